package screens_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/tour-desk/internal/screens"
	"github.com/JaimeStill/tour-desk/pkg/logging"
	"github.com/JaimeStill/tour-desk/pkg/routes"
)

type client struct {
	t   *testing.T
	mux *http.ServeMux
}

func newClient(t *testing.T, e *env) *client {
	mux := http.NewServeMux()
	routes.Register(mux, "", nil, screens.NewHandler(e.registry, 1<<20, logging.Discard()).Routes())
	return &client{t: t, mux: mux}
}

func (c *client) do(method, path, body string) (int, screens.State) {
	c.t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	return c.send(r)
}

func (c *client) send(r *http.Request) (int, screens.State) {
	c.t.Helper()

	w := httptest.NewRecorder()
	c.mux.ServeHTTP(w, r)

	var st screens.State
	if w.Code < 300 && w.Code != http.StatusNoContent {
		if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
			c.t.Fatalf("%s %s: decode: %v", r.Method, r.URL.Path, err)
		}
	}
	return w.Code, st
}

func TestHandler_FormLifecycle(t *testing.T) {
	e := newEnv()
	c := newClient(t, e)

	code, st := c.do(http.MethodPost, "/screens", `{"kind":"services"}`)
	if code != http.StatusCreated || st.Kind != "services" || !st.CanCreate {
		t.Fatalf("mount = %d %+v", code, st)
	}
	base := "/screens/" + st.ID

	if code, st = c.do(http.MethodPost, base+"/form/open", ""); code != http.StatusOK || !st.CanSubmit {
		t.Fatalf("open = %d %+v", code, st.Form)
	}

	if code, _ = c.do(http.MethodPost, base+"/form/fields", `{"title":"City Tour","content":"Half-day tour"}`); code != http.StatusOK {
		t.Fatalf("fields = %d", code)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "city.jpg")
	part.Write([]byte("jpeg"))
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, base+"/form/attach", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if code, st = c.send(req); code != http.StatusOK || st.Form.File != "city.jpg" {
		t.Fatalf("attach = %d %+v", code, st.Form)
	}

	code, st = c.do(http.MethodPost, base+"/form/submit", "")
	if code != http.StatusOK || len(st.Rows) != 1 || st.Rows[0].String("title") != "City Tour" {
		t.Fatalf("submit = %d rows %v", code, st.Rows)
	}

	if code, _ = c.do(http.MethodPost, base+"/form/submit", ""); code != http.StatusConflict {
		t.Errorf("submit closed form = %d, want 409", code)
	}

	target := `{"id":"` + st.Rows[0].ID + `"}`
	if code, st = c.do(http.MethodPost, base+"/delete/arm", target); code != http.StatusOK || !st.CanConfirm {
		t.Fatalf("arm = %d %+v", code, st.Delete)
	}
	if code, st = c.do(http.MethodPost, base+"/delete/confirm", ""); code != http.StatusOK || len(st.Rows) != 0 {
		t.Fatalf("confirm = %d rows %v", code, st.Rows)
	}
	if code, _ = c.do(http.MethodPost, base+"/delete/confirm", ""); code != http.StatusConflict {
		t.Errorf("confirm disarmed = %d, want 409", code)
	}

	if code, _ = c.do(http.MethodDelete, base, ""); code != http.StatusNoContent {
		t.Errorf("unmount = %d", code)
	}
	if code, _ = c.do(http.MethodGet, base, ""); code != http.StatusNotFound {
		t.Errorf("get unmounted = %d, want 404", code)
	}
}

func TestHandler_ViewActions(t *testing.T) {
	e := newEnv()
	c := newClient(t, e)

	_, st := c.do(http.MethodPost, "/screens", `{"kind":"subscribers"}`)
	base := "/screens/" + st.ID

	for _, email := range []string{"c@x.io", "a@x.io", "b@x.io"} {
		c.do(http.MethodPost, base+"/form/open", "")
		c.do(http.MethodPost, base+"/form/fields", `{"email":"`+email+`"}`)
		if code, _ := c.do(http.MethodPost, base+"/form/submit", ""); code != http.StatusOK {
			t.Fatalf("submit %s = %d", email, code)
		}
	}

	_, st = c.do(http.MethodPost, base+"/sort", `{"field":"email"}`)
	if !st.View.Sort.Descending || st.Rows[0].String("email") != "c@x.io" {
		t.Errorf("toggle on default field = %+v first %s", st.View.Sort, st.Rows[0].String("email"))
	}

	_, st = c.do(http.MethodPost, base+"/page", `{"page":1,"page_size":2}`)
	if st.View.Page != 0 || st.View.PageSize != 2 || st.View.TotalPages != 2 {
		t.Errorf("size change = %+v", st.View)
	}

	_, st = c.do(http.MethodPost, base+"/page", `{"page":1,"page_size":2}`)
	if st.View.Page != 1 || len(st.Rows) != 1 {
		t.Errorf("page 1 = %+v rows %d", st.View, len(st.Rows))
	}

	tests := []struct {
		path string
		body string
		want int
	}{
		{base + "/filter", `{"filter":"today"}`, http.StatusBadRequest},
		{base + "/filter", `{"filter":"someday"}`, http.StatusBadRequest},
		{base + "/sort", `{}`, http.StatusBadRequest},
		{base + "/refresh", "", http.StatusOK},
		{"/screens/nope/refresh", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		if code, _ := c.do(http.MethodPost, tt.path, tt.body); code != tt.want {
			t.Errorf("POST %s %s = %d, want %d", tt.path, tt.body, code, tt.want)
		}
	}
}

func TestHandler_MountInvalid(t *testing.T) {
	c := newClient(t, newEnv())

	if code, _ := c.do(http.MethodPost, "/screens", `{"kind":"flights"}`); code != http.StatusNotFound {
		t.Errorf("unknown kind = %d, want 404", code)
	}
	if code, _ := c.do(http.MethodPost, "/screens", `{`); code != http.StatusBadRequest {
		t.Errorf("malformed = %d, want 400", code)
	}
}
