package app

import (
	"os"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rushikulya/marketkit/config"
	"github.com/rushikulya/marketkit/internal/catalog"
	"github.com/rushikulya/marketkit/internal/contact"
	"github.com/rushikulya/marketkit/internal/imagestore"
	"github.com/rushikulya/marketkit/internal/restclient"
	"github.com/rushikulya/marketkit/internal/session"
)

// Application owns the wiring of the marketplace client: configuration,
// logger, session manager, catalog stores, image uploads, contact handoff
// and the background refresh job.
type Application struct {
	appConfig *config.AppConfig
	bus       EventBus.Bus
	sched     *cron.Cron

	sessionStore *session.Store
	sessions     *session.Manager
	rc           *restclient.Client

	products *catalog.Products
	services *catalog.Services
	sellers  *catalog.Sellers
	images   *imagestore.Client
	contact  *contact.Handoff
}

var (
	_ SessionProvider = (*Application)(nil)
	_ CatalogProvider = (*Application)(nil)
	_ ContactProvider = (*Application)(nil)
	_ ConfigProvider  = (*Application)(nil)
	_ BusProvider     = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }

func (a *Application) Bus() EventBus.Bus { return a.bus }

func (a *Application) Session() *session.Manager { return a.sessions }

func (a *Application) Products() *catalog.Products { return a.products }

func (a *Application) Services() *catalog.Services { return a.services }

func (a *Application) Sellers() *catalog.Sellers { return a.sellers }

func (a *Application) Images() *imagestore.Client { return a.images }

func (a *Application) Contact() *contact.Handoff { return a.contact }

func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	if err := os.MkdirAll(cfg.System.Workdir, 0755); err != nil {
		return err
	}

	store, err := session.OpenStore(cfg.SessionPath())
	if err != nil {
		return err
	}
	a.sessionStore = store
	a.sessions = session.NewManager(store)

	a.rc = restclient.New(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Second, a.sessions)
	a.sessions.BindClient(a.rc)

	a.bus = EventBus.New()
	_ = a.bus.Subscribe(catalog.TopicReloaded, func(kind string, n interface{}) {
		zap.S().Debugf("catalog %s reloaded: %v rows", kind, n)
	})
	_ = a.bus.Subscribe(catalog.TopicChanged, func(kind string, id interface{}) {
		zap.S().Debugf("catalog %s changed: %v", kind, id)
	})
	a.products = catalog.NewProducts(a.rc, a.bus)
	a.services = catalog.NewServices(a.rc, a.bus)
	a.sellers = catalog.NewSellers(a.rc, a.bus)
	a.images = imagestore.New(a.rc)
	a.contact = contact.NewHandoff(a.notifier(), cfg.Mail.OrderEmail)

	a.initJobs()

	zap.S().Infof("marketkit ready, api=%s", cfg.API.BaseURL)
	return nil
}

// notifier picks the delivery capability: a real SMTP relay when configured,
// otherwise the mailto draft that mirrors the storefront behavior.
func (a *Application) notifier() contact.Notifier {
	m := a.appConfig.Mail
	if m.SMTPEnable {
		from := m.SMTPFrom
		if from == "" {
			from = m.SMTPUsername
		}
		return contact.SMTPNotifier{
			Host:     m.SMTPHost,
			Port:     m.SMTPPort,
			Username: m.SMTPUsername,
			Password: m.SMTPPassword,
			From:     from,
		}
	}
	return contact.MailtoNotifier{}
}

func (a *Application) initLogger() {
	cfg := a.appConfig

	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Release stops background jobs and flushes resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.sessionStore != nil {
		_ = a.sessionStore.Close()
	}
	_ = zap.L().Sync()
}
