// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(handler))

Logs request start at debug level and completion (status, duration_ms) at
info level.

# Rate Limiting

	writes := ratelimit.New(cfg.BallotRatePerMinute, cfg.BallotBurst, 10*time.Minute)
	mux.HandleFunc("POST /elections/{id}/ballots", middleware.RateLimit(writes, handler))

Any Limiter keyed by client IP works. Rejected requests get 429 with a
Retry-After header.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST and OPTIONS with the Content-Type and X-Admin-Key headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Request bodies are read through ParseJSONBody, which stops after
MaxBodyBytes:

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr without its port.
The result is only ever stored as a salted hash.
*/
package middleware
