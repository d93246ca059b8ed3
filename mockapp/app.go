// Package mockapp serves a small book store web application that the bundled suite can run
// against without network access. Its pages use the same element IDs and structure that the
// page objects expect from the real site.
package mockapp

import (
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// InvalidLoginMessage is shown by the login page after a rejected login.
const InvalidLoginMessage = "Invalid username or password!"

const sessionCookieName = "bookstore-session"

// LogPrefix starts every line the application logs.
const LogPrefix = "[bookstore app] "

//go:embed templates/*.html
var templateFiles embed.FS

// DefaultBooks is the catalog served when Options.Books is empty.
var DefaultBooks = []string{ //nolint:gochecknoglobals
	"Git Pocket Guide",
	"Learning JavaScript Design Patterns",
	"Designing Evolvable Web APIs with ASP.NET",
	"Speaking JavaScript",
	"You Don't Know JS",
	"Programming JavaScript Applications",
	"Eloquent JavaScript, Second Edition",
	"Understanding ECMAScript 6",
}

type Options struct {
	Username string
	Password string
	Books    []string

	// RenderDelay hides each page's content until a script reveals it after this long, to
	// imitate a client-side rendered application.
	RenderDelay time.Duration
}

type App struct {
	options  Options
	pages    map[string]*template.Template
	handler  http.Handler
	logger   framework.Logger
	sessions map[string]string
	lock     sync.Mutex
}

type pageData struct {
	Title             string
	User              string
	Books             []string
	Error             string
	RenderDelayMillis int64
}

func New(options Options, logger framework.Logger) *App {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if len(options.Books) == 0 {
		options.Books = DefaultBooks
	}
	a := &App{
		options:  options,
		pages:    make(map[string]*template.Template),
		logger:   framework.LoggerWithPrefix(logger, LogPrefix),
		sessions: make(map[string]string),
	}
	for _, name := range []string{"home", "books", "login"} {
		a.pages[name] = template.Must(template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html"))
	}

	router := mux.NewRouter()
	router.HandleFunc("/", a.serveHome).Methods("GET")
	router.HandleFunc("/books", a.serveBooks).Methods("GET")
	router.HandleFunc("/login", a.serveLoginForm).Methods("GET")
	router.HandleFunc("/login", a.serveLogin).Methods("POST")
	router.HandleFunc("/logout", a.serveLogout).Methods("POST")
	a.handler = router
	return a
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *App) serveHome(w http.ResponseWriter, r *http.Request) {
	a.render(w, "home", pageData{Title: "Home"})
}

func (a *App) serveBooks(w http.ResponseWriter, r *http.Request) {
	a.render(w, "books", pageData{Title: "Book Store", User: a.currentUser(r), Books: a.options.Books})
}

func (a *App) serveLoginForm(w http.ResponseWriter, r *http.Request) {
	if a.currentUser(r) != "" {
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}
	a.render(w, "login", pageData{Title: "Login"})
}

func (a *App) serveLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	username, password := r.PostForm.Get("userName"), r.PostForm.Get("password")
	if username == "" || username != a.options.Username || password != a.options.Password {
		a.logger.Printf("Rejected login for %q", username)
		a.render(w, "login", pageData{Title: "Login", Error: InvalidLoginMessage})
		return
	}
	token := uuid.NewString()
	a.lock.Lock()
	a.sessions[token] = username
	a.lock.Unlock()
	a.logger.Printf("Logged in %q", username)
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: token, Path: "/", HttpOnly: true})
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (a *App) serveLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		a.lock.Lock()
		delete(a.sessions, c.Value)
		a.lock.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *App) currentUser(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.sessions[c.Value]
}

func (a *App) render(w http.ResponseWriter, page string, data pageData) {
	data.RenderDelayMillis = a.options.RenderDelay.Milliseconds()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		a.logger.Printf("Error rendering %s page: %s", page, err)
	}
}
