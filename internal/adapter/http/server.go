package adapthttp

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"weightlog/internal/app"
)

// Services bundles the application services the HTTP adapter drives.
type Services struct {
	Records  *app.RecordService
	Transfer *app.TransferService
	Stats    *app.StatsService
	// Auth is optional. Without it every route is open.
	Auth *app.AuthService
}

// OIDCConfig holds the SSO provider wiring.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// NewOIDCConfig discovers issuer and prepares the code flow for the client.
func NewOIDCConfig(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return OIDCConfig{}, err
	}
	return OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	records  *app.RecordService
	transfer *app.TransferService
	stats    *app.StatsService
	authSvc  *app.AuthService

	oidcConfig  OIDCConfig
	webDir      string
	fileRoot    string
	uploadLimit int64
	disableAuth bool
}

// maxUploadBytes caps a restore upload.
const maxUploadBytes = 32 << 20

// New creates a Server wired to the given application services. An empty
// webDir serves no static files.
func New(svc Services, webDir string) *Server {
	return &Server{
		records:     svc.Records,
		transfer:    svc.Transfer,
		stats:       svc.Stats,
		authSvc:     svc.Auth,
		webDir:      webDir,
		uploadLimit: maxUploadBytes,
		disableAuth: svc.Auth == nil,
	}
}

// WithOIDC enables SSO login through cfg.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithFileRoot allows the export, import, backup and restore endpoints to
// name files on the server, relative to dir. Without it those requests are
// refused and only uploads and downloads work.
func (s *Server) WithFileRoot(dir string) *Server {
	s.fileRoot = dir
	return s
}

// WithoutAuth turns off session checks.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/records", s.handleRecords)
	protected.HandleFunc("/profile", s.handleProfile)
	protected.HandleFunc("/goal", s.handleGoal)

	protected.HandleFunc("/export", s.handleExport)
	protected.HandleFunc("/import/json", s.handleImport(s.transfer.ImportJSON))
	protected.HandleFunc("/import/csv", s.handleImport(s.transfer.ImportCSV))
	protected.HandleFunc("/backup", s.handleBackup)
	protected.HandleFunc("/restore", s.handleRestore)

	protected.HandleFunc("/stats/summary", s.handleStatsSummary)
	protected.HandleFunc("/stats/progress", s.handleStatsProgress)
	protected.HandleFunc("/stats/trend", s.handleStatsTrend)

	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.webDir != "" {
		root.Handle("/", spaFromDisk(s.webDir))
	}

	return s.loggingMiddleware(withNoCache(root))
}
