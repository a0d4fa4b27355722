package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// Flavors understood by the renderer.
	HTML = "html"
	RSS2 = "rss2"
	Text = "text"
)

type Configuration struct {
	// Name of the installation, shown in page titles and the RSD document.
	Name string
	// Url is the public base url. Blogs live under Url/blog/{id}/.
	Url *url.URL
	// Port is the TCP port the HTTP server listens on.
	Port uint16
	// Debug, if true, will make the application log all HTTP requests and other events.
	Debug bool
	// DbUrl is the path to the database file.
	DbUrl string
	// QueueDbUrl is the database used by the task queue. It may equal DbUrl.
	QueueDbUrl string
	// MigrationsFolder holds the SQL migrations applied by SetupDB.
	MigrationsFolder string
	// SessionKey authenticates and encrypts the admin session cookie; it must be 32 bytes.
	SessionKey string
	// ResourcesDir is the directory where uploaded media objects are stored.
	ResourcesDir string
	StaticDir    string
	// DefaultBlog is created on first run together with an administrator account.
	DefaultBlog   string
	AdminUser     string
	AdminPassword string
	AdminEmail    string
	// Chains maps a flavor to the ordered plugin names used when a blog defines none.
	Chains map[string][]string
	// AdminChain is the default chain of the administration pipeline.
	AdminChain []string
	// ThrottleSweep is how often expired throttle entries are evicted.
	ThrottleSweep time.Duration
	// ThrottleCapacity bounds the number of addresses remembered by a throttle map.
	ThrottleCapacity int
	Smtp             SmtpConfig
	// Webhooks receive a signed ActivityStreams Create activity whenever an entry is added.
	Webhooks []string
}

type SmtpConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s SmtpConfig) Enabled() bool {
	return s.Host != ""
}

func (s SmtpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "gopress")
	v.SetDefault("url", "http://localhost:8080")
	v.SetDefault("port", 8080)
	v.SetDefault("db", "gopress.db")
	v.SetDefault("queue_db", "gopress-queue.db")
	v.SetDefault("migrations", "migrations")
	v.SetDefault("resources_dir", "resources")
	v.SetDefault("static_dir", "static")
	v.SetDefault("default_blog", "default")
	v.SetDefault("admin.user", "admin")
	v.SetDefault("admin.email", "admin@localhost")
	v.SetDefault("chains.html", []string{"math-comment-authentication", "comment", "trackback"})
	v.SetDefault("chains.rss2", []string{})
	v.SetDefault("chains.text", []string{})
	v.SetDefault("admin_chain", []string{"admin", "edit-blog-entries", "edit-blog-categories", "edit-blog-properties", "edit-blog-users"})
	v.SetDefault("throttle.sweep", "1m")
	v.SetDefault("throttle.capacity", 100000)
	v.SetDefault("smtp.port", 25)
}

// ReadConfig loads the configuration from gopress.{toml,yaml,json} in the working directory or /etc/gopress,
// then from GOPRESS_ prefixed environment variables. A missing file is not an error.
func ReadConfig() (Configuration, error) {
	v := viper.New()
	v.SetConfigName("gopress")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/gopress")
	v.SetEnvPrefix("gopress")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Configuration{}, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Configuration, error) {
	u, err := url.Parse(strings.TrimSuffix(v.GetString("url"), "/"))
	if err != nil {
		return Configuration{}, fmt.Errorf("invalid url %q: %w", v.GetString("url"), err)
	}

	chains := make(map[string][]string)
	for _, flavor := range []string{HTML, RSS2, Text} {
		chains[flavor] = v.GetStringSlice("chains." + flavor)
	}

	cfg := Configuration{
		Name:             v.GetString("name"),
		Url:              u,
		Port:             v.GetUint16("port"),
		Debug:            v.GetBool("debug"),
		DbUrl:            v.GetString("db"),
		QueueDbUrl:       v.GetString("queue_db"),
		MigrationsFolder: v.GetString("migrations"),
		SessionKey:       v.GetString("session_key"),
		ResourcesDir:     v.GetString("resources_dir"),
		StaticDir:        v.GetString("static_dir"),
		DefaultBlog:      v.GetString("default_blog"),
		AdminUser:        v.GetString("admin.user"),
		AdminPassword:    v.GetString("admin.password"),
		AdminEmail:       v.GetString("admin.email"),
		Chains:           chains,
		AdminChain:       v.GetStringSlice("admin_chain"),
		ThrottleSweep:    v.GetDuration("throttle.sweep"),
		ThrottleCapacity: v.GetInt("throttle.capacity"),
		Smtp: SmtpConfig{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			Username: v.GetString("smtp.username"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
		},
		Webhooks: v.GetStringSlice("webhooks"),
	}

	if l := len(cfg.SessionKey); l != 0 && l != 32 {
		return Configuration{}, fmt.Errorf("session_key must be 32 bytes long, got %d", l)
	}

	return cfg, nil
}
