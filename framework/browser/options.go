package browser

// Chromium content-setting value that blocks a permission outright.
const contentSettingBlock = 2

var commonArgs = []string{
	"--start-maximized",
	"--disable-infobars",
	"--disable-extensions",
	"--disable-popup-blocking",
}

var chromeOnlyArgs = []string{
	"--disable-features=PasswordCheck,AutofillKeyedData,SafeBrowsingEnhancedProtection",
	"--disable-sync",
}

// LaunchOptions are the concrete parameters a Launcher needs. They are derived from a Config by
// BuildLaunchOptions and are never edited afterward.
type LaunchOptions struct {
	Kind        Kind
	Channel     string
	Headless    bool
	Args        []string
	DownloadDir string
	ProfileDir  string

	// Preferences uses dotted keys ("download.default_directory"); they are expanded into nested
	// objects when the profile's preferences file is written.
	Preferences map[string]interface{}
}

// BuildLaunchOptions maps a Config onto launch arguments and profile preferences. Both browser
// kinds receive the same preferences so that a suite behaves the same whichever one is selected.
func BuildLaunchOptions(cfg Config) (LaunchOptions, error) {
	kind, err := ParseKind(cfg.Kind)
	if err != nil {
		return LaunchOptions{}, err
	}
	o := LaunchOptions{
		Kind:        kind,
		Headless:    cfg.Headless,
		DownloadDir: cfg.DownloadDir,
		ProfileDir:  cfg.ProfileDir,
		Preferences: make(map[string]interface{}),
	}
	o.Args = append(o.Args, commonArgs...)
	switch kind {
	case Chrome:
		o.Channel = "chrome"
		o.Args = append(o.Args, chromeOnlyArgs...)
	case Edge:
		o.Channel = "msedge"
	}
	if cfg.Headless {
		o.Args = append(o.Args, "--headless=new")
	}

	if cfg.DownloadDir != "" {
		o.Preferences["download.default_directory"] = cfg.DownloadDir
	}
	o.Preferences["download.prompt_for_download"] = false
	if cfg.DisableNotifications {
		o.Preferences["profile.default_content_setting_values.notifications"] = contentSettingBlock
	}
	if cfg.DisablePasswordManager {
		o.Preferences["credentials_enable_service"] = false
		o.Preferences["profile.password_manager_enabled"] = false
	}
	return o, nil
}

// PreferenceKeys returns the preference keys in sorted order.
func (o LaunchOptions) PreferenceKeys() []string {
	return sortedKeys(o.Preferences)
}
