// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-tally/card"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
)

type CardHandler struct{}

func NewCardHandler() *CardHandler {
	return &CardHandler{}
}

// Validate handles POST /cards/validate
func (h *CardHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	number, err := card.ParseNumber(req.Number)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "number must contain only digits")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ValidateCardResponse{
		Number:   req.Number,
		Issuer:   string(card.Classify(number)),
		Checksum: card.Checksum(number),
		Valid:    card.Valid(number),
	})
}
