// Package http provides the HTTP API of the upload gateway.
//
// # Routes
//
//	OPTIONS *                     header policy only, empty body
//	GET     /api/health           {ok, env, now}
//	GET     /api/ping             {pong}
//	GET     /api/test-db          {ok, users}
//	GET     /api/db-tables        {ok, tables}
//	POST    /api/uploads/prepare  admin, returns an upload ticket
//	PUT     /api/uploads/put?key= admin, stores the raw body
//
// Anything else answers 404 with {error: "Not Found", path}.
//
// # Middleware
//
// Every response, errors and 404s included, passes through HeaderPolicy which
// sets the CORS and security headers. Upload routes additionally sit behind
// AdminOnly, which compares the x-admin-token header with the configured
// secret. RequestLogger and Recoverer provide per request logging and panic
// recovery through log/slog.
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{
//	    Env:        "production",
//	    AdminToken: token,
//	    Headers:    http.HeaderConfig{AllowOrigin: "https://app.example.com"},
//	}, uploads, diagnostics)
//	srv := &nethttp.Server{Addr: ":8080", Handler: handler.Router()}
//
// Failures are written as {ok: false, error} with the status chosen by
// HandleError from the sentinel errors of the stowgate package.
package http
