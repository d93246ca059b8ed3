package browser

import "github.com/bookstore-qa/ui-test-harness/framework"

// Manager creates and owns the session of one worker. Only the Manager starts or replaces
// sessions; other components read the current one.
type Manager struct {
	launcher Launcher
	logger   framework.Logger
	current  *Session
}

func NewManager(launcher Launcher, logger framework.Logger) *Manager {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Manager{launcher: launcher, logger: logger}
}

// Start validates the configuration and launches a new session. A session that is already
// running is closed first and replaced. On a *ConfigError no browser is launched and the
// previous session, if any, is left alone.
func (m *Manager) Start(cfg Config) (*Session, error) {
	options, err := BuildLaunchOptions(cfg)
	if err != nil {
		return nil, err
	}
	if m.current.Active() {
		m.logger.Printf("Replacing running browser session %s", m.current.ID())
		if err := m.current.Close(); err != nil {
			m.logger.Printf("Error closing previous session: %s", err)
		}
	}
	m.current = nil

	s := newSession(options, m.logger)
	driver, err := m.launcher.Launch(options)
	if err != nil {
		return nil, &SessionError{Op: "start", Err: err}
	}
	s.driver = driver
	s.state = Running
	m.current = s
	mode := "headed"
	if options.Headless {
		mode = "headless"
	}
	m.logger.Printf("Started %s session %s (%s)", options.Kind, s.ID(), mode)
	return s, nil
}

// Current returns the running session, or nil.
func (m *Manager) Current() *Session {
	if m.current.Active() {
		return m.current
	}
	return nil
}

// Close closes the current session. With no running session it only logs.
func (m *Manager) Close() error {
	if !m.current.Active() {
		m.logger.Println("No active browser session to close")
		return nil
	}
	s := m.current
	m.current = nil
	return s.Close()
}
