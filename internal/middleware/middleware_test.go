package middleware

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func textHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_Empty_IsIdentity(t *testing.T) {
	t.Parallel()

	rr := serve(Chain(textHandler(http.StatusOK, "handler")),
		httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Body.String() != "handler" {
		t.Errorf("body = %q, want %q", rr.Body.String(), "handler")
	}
}

func TestChain_WrapsHandler(t *testing.T) {
	t.Parallel()

	wrap := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("before-"))
			next.ServeHTTP(w, r)
			_, _ = w.Write([]byte("-after"))
		})
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("handler"))
	})

	rr := serve(Chain(handler, wrap), httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Body.String() != "before-handler-after" {
		t.Errorf("body = %q, want %q", rr.Body.String(), "before-handler-after")
	}
}

func TestChain_OuterMiddlewareRunsFirst(t *testing.T) {
	t.Parallel()

	tag := func(s string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(s))
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("H"))
	})

	rr := serve(Chain(handler, tag("1"), tag("2"), tag("3")),
		httptest.NewRequest(http.MethodGet, "/test", nil))

	// The first middleware passed to Chain is the outermost
	if rr.Body.String() != "123H" {
		t.Errorf("execution order = %q, want %q", rr.Body.String(), "123H")
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID_AssignsAndPropagates(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	rr := serve(RequestID(handler), httptest.NewRequest(http.MethodGet, "/test", nil))

	headerID := rr.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("response should carry X-Request-ID")
	}
	if ctxID := GetRequestID(handler.ctx); ctxID != headerID {
		t.Errorf("context id %q should match header id %q", ctxID, headerID)
	}
}

func TestRequestID_KeepsClientSuppliedID(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "existing-request-id")

	rr := serve(RequestID(handler), req)

	if got := rr.Header().Get("X-Request-ID"); got != "existing-request-id" {
		t.Errorf("header id = %q, want the client's id", got)
	}
	if got := GetRequestID(handler.ctx); got != "existing-request-id" {
		t.Errorf("context id = %q, want the client's id", got)
	}
}

func TestRequestID_GeneratesUUIDs(t *testing.T) {
	t.Parallel()

	rr := serve(RequestID(&captureHandler{}), httptest.NewRequest(http.MethodGet, "/test", nil))

	id := rr.Header().Get("X-Request-ID")
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Errorf("generated id %q is not in UUID form", id)
	}
}

func TestGetRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"present", context.WithValue(context.Background(), RequestIDKey, "req-12345"), "req-12345"},
		{"absent", context.Background(), ""},
		{"wrong type", context.WithValue(context.Background(), RequestIDKey, 12345), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GetRequestID(tt.ctx); got != tt.want {
				t.Errorf("GetRequestID = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_PassesThroughWithoutPanic(t *testing.T) {
	t.Parallel()

	rr := serve(Recovery(textHandler(http.StatusOK, "success")),
		httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if rr.Body.String() != "success" {
		t.Errorf("body = %q, want %q", rr.Body.String(), "success")
	}
}

func TestRecovery_PanicBecomesProblemResponse(t *testing.T) {
	t.Parallel()

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	rr := serve(Recovery(panicking), httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	if !strings.Contains(rr.Body.String(), "Internal Server Error") {
		t.Errorf("body %q should describe the failure", rr.Body.String())
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func corsGet(allowed []string, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return serve(CORS(allowed)(textHandler(http.StatusOK, "")), req)
}

func TestCORS_AllowOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"listed origin is echoed", []string{"https://example.com", "https://app.example.com"}, "https://example.com", "https://example.com"},
		{"unlisted origin gets nothing", []string{"https://allowed.com"}, "https://evil.com", ""},
		{"wildcard echoes any origin", []string{"*"}, "https://any-origin.com", "https://any-origin.com"},
		{"no origin header gets nothing", []string{"https://example.com"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := corsGet(tt.allowed, tt.origin)
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORS_Preflight_ShortCircuits(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://example.com")

	rr := serve(CORS([]string{"https://example.com"})(handler), req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rr.Code)
	}
	if handler.called {
		t.Error("preflight must not reach the handler")
	}
}

func TestCORS_AlwaysSetsPolicyHeaders(t *testing.T) {
	t.Parallel()

	rr := corsGet([]string{"https://example.com"}, "https://example.com")

	for _, name := range []string{
		"Access-Control-Allow-Methods",
		"Access-Control-Allow-Headers",
		"Access-Control-Expose-Headers",
		"Access-Control-Max-Age",
	} {
		if rr.Header().Get(name) == "" {
			t.Errorf("missing %s header", name)
		}
	}
}

// ============================================================================
// Compress Tests
// ============================================================================

func TestCompress_GzipsForAcceptingClients(t *testing.T) {
	t.Parallel()

	const payload = "Hello, this is a test response that should be compressed."

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	rr := serve(Compress(textHandler(http.StatusOK, payload)), req)

	if got := rr.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}

	zr, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	defer func() { _ = zr.Close() }()

	decompressed, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("reading gzip stream: %v", err)
	}
	if string(decompressed) != payload {
		t.Errorf("decompressed = %q, want %q", string(decompressed), payload)
	}
}

func TestCompress_PlainForOtherClients(t *testing.T) {
	t.Parallel()

	rr := serve(Compress(textHandler(http.StatusOK, "uncompressed response")),
		httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Header().Get("Content-Encoding") == "gzip" {
		t.Error("client without Accept-Encoding gzip must get a plain body")
	}
	if rr.Body.String() != "uncompressed response" {
		t.Errorf("body = %q, want the plain response", rr.Body.String())
	}
}

func TestCompress_SetsVaryHeader(t *testing.T) {
	t.Parallel()

	rr := serve(Compress(textHandler(http.StatusOK, "ok")),
		httptest.NewRequest(http.MethodGet, "/test", nil))

	if vary := rr.Header().Get("Vary"); vary != "Accept-Encoding" {
		t.Errorf("Vary = %q, want Accept-Encoding", vary)
	}
}

// ============================================================================
// Logger Tests (via statusRecorder)
// ============================================================================

func TestStatusRecorder_CapturesStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: rr, status: http.StatusOK}

	rec.WriteHeader(http.StatusCreated)

	if rec.status != http.StatusCreated {
		t.Errorf("captured status = %d, want 201", rec.status)
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("forwarded status = %d, want 201", rr.Code)
	}
}

func TestStatusRecorder_CountsBytes(t *testing.T) {
	t.Parallel()

	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

	_, _ = rec.Write([]byte("body"))

	if rec.status != http.StatusOK {
		t.Errorf("status = %d, want the 200 default when WriteHeader is skipped", rec.status)
	}
	if rec.bytes != 4 {
		t.Errorf("bytes = %d, want 4", rec.bytes)
	}
}

func TestLogger_IsTransparent(t *testing.T) {
	t.Parallel()

	rr := serve(Logger(textHandler(http.StatusCreated, "created")),
		httptest.NewRequest(http.MethodPost, "/v1/reservations", nil))

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rr.Code)
	}
	if rr.Body.String() != "created" {
		t.Errorf("body = %q, want %q", rr.Body.String(), "created")
	}
}
