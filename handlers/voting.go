// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/livetally/livetally/cliparse"
	"github.com/livetally/livetally/gate"
	"github.com/livetally/livetally/identity"
	"github.com/livetally/livetally/middleware"
	"github.com/livetally/livetally/models"
)

// votedCookieMaxAge is one year, matching the marker validity promised
// to accepted voters.
const votedCookieMaxAge = 60 * 60 * 24 * 365

type VotingHandler struct {
	gate *gate.Gate
	cfg  cliparse.Config
}

func NewVotingHandler(g *gate.Gate, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{gate: g, cfg: cfg}
}

// SubmitVote handles POST /polls/:id/vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	// Parse request
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Derive the two identity signals; address comes from the
	// transport, never the client body
	clientIP := middleware.GetClientIP(r)
	addrHash, fpHash, err := identity.Extract(clientIP, req.Fingerprint, h.cfg.AddressSalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "fingerprint: "+err.Error())
		return
	}

	// The cookie layer only needs presence, not a verifiable value
	_, cookieErr := r.Cookie(identity.VotedCookieName(pollID))
	hasVotedCookie := cookieErr == nil

	vote, rej := h.gate.Submit(r.Context(), gate.SubmitRequest{
		PollID:          pollID,
		OptionID:        req.OptionID,
		FingerprintHash: fpHash,
		AddressHash:     addrHash,
		HasVotedCookie:  hasVotedCookie,
	})

	if rej != nil {
		switch rej.Kind {
		case gate.KindValidation:
			middleware.ErrorResponse(w, http.StatusBadRequest, rej.Detail)
		case gate.KindPollNotFound:
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		case gate.KindInvalidOption:
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option")
		case gate.KindAlreadyVoted:
			middleware.ErrorResponse(w, http.StatusForbidden, "You have already voted on this poll")
		default:
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		}
		return
	}

	// Issue the long-lived per-poll voted marker
	http.SetCookie(w, &http.Cookie{
		Name:     identity.VotedCookieName(pollID),
		Value:    "true",
		MaxAge:   votedCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Vote:    *vote,
		Message: "Vote cast successfully",
	})
}
