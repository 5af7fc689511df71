package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"myshop/internal/catalog"
	"myshop/internal/clock"
	"myshop/internal/http/handlers"
	"myshop/internal/simulation"
)

type apiFixture struct {
	t       *testing.T
	handler http.Handler
	clock   *clock.Manual
	token   string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	c := clock.NewManual(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	dir := catalog.NewDirectory()
	assets := catalog.NewSeededAssetStore()
	sim, err := simulation.NewService(simulation.Options{
		Clock:  c,
		Stores: dir,
		Assets: assets,
		Users:  dir,
	})
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	app := &handlers.App{
		Sim:        sim,
		Directory:  dir,
		Accounts:   catalog.NewAccounts(),
		Assets:     assets,
		Logger:     zerolog.Nop(),
		JWTSecret:  "router-test-secret",
		SessionTTL: time.Hour,
	}
	handler := NewRouter(app, Options{
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitPerMin: 1000,
		DefaultLocale:   "en",
	})
	return &apiFixture{t: t, handler: handler, clock: c}
}

func (f *apiFixture) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	f.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			f.t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "203.0.113.7:5000"
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) login() {
	f.t.Helper()
	rec := f.do(http.MethodPost, "/api/auth/login/google", map[string]string{"redirectUrl": "/dashboard"})
	if rec.Code != http.StatusOK {
		f.t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Token    string `json:"token"`
		Redirect string `json:"redirect"`
		User     struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	decode(f.t, rec, &out)
	if out.Token == "" || out.Redirect != "/dashboard" || out.User.Email != "google_user@example.com" || out.User.Name != "Google Demo" {
		f.t.Fatalf("login response = %+v", out)
	}
	f.token = out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var out struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decode(t, rec, &out)
	if out.Error.Code != code || out.Error.Message == "" {
		t.Fatalf("error = %+v, want code %q", out.Error, code)
	}
}

func TestHealthz(t *testing.T) {
	f := newAPIFixture(t)
	rec := f.do(http.MethodGet, "/v1/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthFlow(t *testing.T) {
	f := newAPIFixture(t)

	expectError(t, f.do(http.MethodGet, "/api/me", nil), http.StatusUnauthorized, "unauthenticated")
	expectError(t, f.do(http.MethodGet, "/api/auth/session", nil), http.StatusUnauthorized, "unauthenticated")
	expectError(t, f.do(http.MethodPost, "/api/auth/login/myspace", nil), http.StatusBadRequest, "unsupported_provider")

	f.login()
	rec := f.do(http.MethodGet, "/api/auth/session/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("session status = %d", rec.Code)
	}
	var session struct {
		StoreID string `json:"storeId"`
	}
	decode(t, rec, &session)
	if session.StoreID != "s1" {
		t.Fatalf("session storeId = %q, want %q", session.StoreID, "s1")
	}

	rec = f.do(http.MethodPatch, "/api/me", map[string]any{
		"name":        "Ayu",
		"preferences": map[string]any{"theme": "dark"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch me status = %d, body %s", rec.Code, rec.Body.String())
	}
	var profile struct {
		Name        string `json:"name"`
		Preferences struct {
			Theme         string `json:"theme"`
			Notifications bool   `json:"notifications"`
		} `json:"preferences"`
		Stores []struct {
			ID string `json:"id"`
		} `json:"stores"`
	}
	decode(t, rec, &profile)
	if profile.Name != "Ayu" || profile.Preferences.Theme != "dark" || !profile.Preferences.Notifications {
		t.Fatalf("profile = %+v", profile)
	}
	if len(profile.Stores) != 1 || profile.Stores[0].ID != "s1" {
		t.Fatalf("profile stores = %+v", profile.Stores)
	}

	rec = f.do(http.MethodPost, "/api/auth/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
}

func TestIngestionFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.login()

	expectError(t, f.do(http.MethodPost, "/api/stores/s9/ingestions", nil), http.StatusNotFound, "store_not_found")
	expectError(t, f.do(http.MethodGet, "/api/ingestions/ing_missing", nil), http.StatusNotFound, "ingestion_not_found")

	rec := f.do(http.MethodPost, "/api/stores/s3/ingestions/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start ingestion status = %d, body %s", rec.Code, rec.Body.String())
	}
	var started struct {
		IngestionID string `json:"ingestionId"`
		Status      string `json:"status"`
	}
	decode(t, rec, &started)
	if started.IngestionID == "" || started.Status != "in_progress" {
		t.Fatalf("start response = %+v", started)
	}
	base := "/api/ingestions/" + started.IngestionID

	type ingestionView struct {
		Status   string `json:"status"`
		Progress int    `json:"progress"`
		Steps    []struct {
			ID     string `json:"id"`
			Label  string `json:"label"`
			Status string `json:"status"`
		} `json:"steps"`
		EstimatedSecondsRemaining int `json:"estimatedSecondsRemaining"`
	}

	var view ingestionView
	decode(t, f.do(http.MethodGet, base, nil, "X-Locale", "id"), &view)
	if view.Progress != 5 || view.EstimatedSecondsRemaining != 50 {
		t.Fatalf("fresh ingestion = %+v", view)
	}
	if view.Steps[0].Label != "Mengumpulkan informasi dasar" || view.Steps[0].Status != "in_progress" {
		t.Fatalf("first step = %+v", view.Steps[0])
	}

	f.clock.Advance(55 * time.Second)
	decode(t, f.do(http.MethodGet, base, nil), &view)
	if view.Status != "completed" || view.Progress != 100 || view.EstimatedSecondsRemaining != 0 {
		t.Fatalf("finished ingestion = %+v", view)
	}
	if view.Steps[0].Label != "Collecting basic information" {
		t.Fatalf("english label = %q", view.Steps[0].Label)
	}

	var groups struct {
		StoreID    string `json:"storeId"`
		Categories []struct {
			ID     string `json:"id"`
			Assets []struct {
				ID       string `json:"id"`
				Selected bool   `json:"selected"`
			} `json:"assets"`
		} `json:"categories"`
	}
	decode(t, f.do(http.MethodGet, base+"/assets", nil), &groups)
	if groups.StoreID != "s3" || len(groups.Categories) != 4 {
		t.Fatalf("ingestion assets = %+v", groups)
	}

	for _, body := range []string{`{}`, `{"selectedAssetIds":"logo_1_s3"}`, `{"selectedAssetIds":[1,2]}`, `[]`, `not json`} {
		expectError(t, f.do(http.MethodPost, base+"/selection", body), http.StatusBadRequest, "invalid_payload")
	}
	rec = f.do(http.MethodPost, base+"/selection", map[string]any{"selectedAssetIds": []string{"menu_2_s3", "logo_1_s3"}})
	var selection struct {
		SelectedAssetIDs []string `json:"selectedAssetIds"`
	}
	decode(t, rec, &selection)
	if len(selection.SelectedAssetIDs) != 2 || selection.SelectedAssetIDs[0] != "logo_1_s3" {
		t.Fatalf("selection = %+v", selection)
	}

	var result struct {
		AssetLibraryID string `json:"assetLibraryId"`
		TotalAssets    int    `json:"totalAssets"`
	}
	decode(t, f.do(http.MethodPost, base+"/finalize", nil), &result)
	if result.AssetLibraryID != "library_default" || result.TotalAssets != 2 {
		t.Fatalf("finalize = %+v", result)
	}

	var listed struct {
		Results []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"results"`
	}
	decode(t, f.do(http.MethodGet, "/api/assets?storeId=s3&category=menu", nil), &listed)
	if len(listed.Results) != 1 || listed.Results[0].ID != "menu_2_s3" {
		t.Fatalf("promoted menu assets = %+v", listed.Results)
	}

	var stores struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	decode(t, f.do(http.MethodGet, "/api/stores", nil), &stores)
	if len(stores.Results) != 2 || stores.Results[1].ID != "s3" {
		t.Fatalf("linked stores = %+v", stores.Results)
	}
	if rec := f.do(http.MethodDelete, "/api/stores/s3", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("unlink status = %d", rec.Code)
	}
}

func TestCancelIngestion(t *testing.T) {
	f := newAPIFixture(t)
	f.login()

	var started struct {
		IngestionID string `json:"ingestionId"`
	}
	decode(t, f.do(http.MethodPost, "/api/stores/s1/ingestions", nil), &started)
	f.clock.Advance(20 * time.Second)

	var canceled struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, f.do(http.MethodPost, "/api/ingestions/"+started.IngestionID+"/cancel", nil), &canceled)
	if canceled.ID != started.IngestionID || canceled.Status != "canceled" {
		t.Fatalf("cancel = %+v", canceled)
	}

	f.clock.Advance(time.Minute)
	var view struct {
		Status   string `json:"status"`
		Progress int    `json:"progress"`
	}
	decode(t, f.do(http.MethodGet, "/api/ingestions/"+started.IngestionID, nil), &view)
	if view.Status != "canceled" || view.Progress != 40 {
		t.Fatalf("canceled ingestion after a minute = %+v", view)
	}
}

func TestGenerationFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.login()

	for _, prefix := range []string{"/api/generations/posters", "/api/generations/menu-boards"} {
		expectError(t, f.do(http.MethodGet, prefix+"/job_missing", nil), http.StatusNotFound, "job_not_found")
		expectError(t, f.do(http.MethodPost, prefix+"/job_missing/save", nil), http.StatusNotFound, "job_not_found")
	}

	var early struct {
		JobID  string `json:"jobId"`
		Status string `json:"status"`
	}
	decode(t, f.do(http.MethodPost, "/api/generations/posters", map[string]any{"headline": "Fresh Coffee"}), &early)
	if early.Status != "queued" {
		t.Fatalf("start poster = %+v", early)
	}
	expectError(t, f.do(http.MethodPost, "/api/generations/posters/"+early.JobID+"/save", nil), http.StatusBadRequest, "job_not_ready")

	type jobView struct {
		ID        string  `json:"id"`
		JobID     string  `json:"jobId"`
		Status    string  `json:"status"`
		ResultURL *string `json:"resultUrl"`
		Error     *string `json:"error"`
	}
	var failed jobView
	decode(t, f.do(http.MethodGet, "/api/generations/posters/"+early.JobID, nil), &failed)
	if failed.Status != "failed" || failed.Error == nil || *failed.Error != "Job is not finished yet." {
		t.Fatalf("poster after early save = %+v", failed)
	}

	var started struct {
		JobID string `json:"jobId"`
	}
	decode(t, f.do(http.MethodPost, "/api/generations/menu-boards", map[string]any{
		"items":         []map[string]string{{"name": "Latte", "price": "25000"}},
		"templateStyle": "chalkboard",
	}), &started)

	f.clock.Advance(11 * time.Second)
	var done jobView
	decode(t, f.do(http.MethodGet, "/api/generations/menu-boards/"+started.JobID, nil), &done)
	if done.Status != "succeeded" || done.ResultURL == nil || done.ID != done.JobID {
		t.Fatalf("menu board after 11s = %+v", done)
	}

	var saved struct {
		AssetID string `json:"assetId"`
	}
	decode(t, f.do(http.MethodPost, "/api/generations/menu-boards/"+started.JobID+"/save", nil), &saved)
	if saved.AssetID == "" {
		t.Fatalf("save returned no asset id")
	}

	rec := f.do(http.MethodGet, "/api/assets/"+saved.AssetID+"/download", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != *done.ResultURL {
		t.Fatalf("download = %d %q, want 302 %q", rec.Code, rec.Header().Get("Location"), *done.ResultURL)
	}

	var styles struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	decode(t, f.do(http.MethodGet, "/api/generations/styles", nil), &styles)
	if len(styles.Results) != 4 {
		t.Fatalf("styles = %+v", styles.Results)
	}
}

func TestAssetLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	f.login()

	expectError(t, f.do(http.MethodPost, "/api/assets", map[string]string{"name": "x"}), http.StatusBadRequest, "missing_category")
	expectError(t, f.do(http.MethodPost, "/api/assets", map[string]string{"category": "logo", "storeId": "s9"}), http.StatusNotFound, "store_not_found")

	var upload struct {
		AssetID   string `json:"assetId"`
		UploadURL string `json:"uploadUrl"`
	}
	decode(t, f.do(http.MethodPost, "/api/assets/uploads", nil), &upload)
	if upload.AssetID == "" || upload.UploadURL != "https://uploads.example.com/"+upload.AssetID {
		t.Fatalf("upload = %+v", upload)
	}

	rec := f.do(http.MethodPost, "/api/assets", map[string]string{"assetId": upload.AssetID, "category": "logo"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		URL     string `json:"url"`
		StoreID string `json:"storeId"`
	}
	decode(t, rec, &created)
	if created.ID != upload.AssetID || created.URL != upload.UploadURL || created.Name != "Uploaded Asset" || created.StoreID != "s1" {
		t.Fatalf("created asset = %+v", created)
	}

	path := "/api/assets/" + created.ID
	var patched struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	decode(t, f.do(http.MethodPatch, path, map[string]string{"name": "New Logo", "category": ""}), &patched)
	if patched.Name != "New Logo" || patched.Category != "logo" {
		t.Fatalf("patched asset = %+v", patched)
	}

	if rec := f.do(http.MethodDelete, path, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	expectError(t, f.do(http.MethodGet, path, nil), http.StatusNotFound, "asset_not_found")
	expectError(t, f.do(http.MethodDelete, path, nil), http.StatusNotFound, "asset_not_found")
	expectError(t, f.do(http.MethodGet, path+"/download", nil), http.StatusNotFound, "asset_not_found")
}
