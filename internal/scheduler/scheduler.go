package scheduler

import (
	"time"

	"github.com/mdouchement/logger"
	"github.com/mdouchement/neoloadutility/internal/database"
	"github.com/mdouchement/neoloadutility/internal/storage"
	"github.com/mdouchement/neoloadutility/internal/webserver/service"
	"github.com/robfig/cron/v3"
)

// A Controller is an Iversion Of Control pattern used to init the server package.
type Controller struct {
	Logger        logger.Logger
	Database      database.Client
	Storage       storage.Backend
	Specification string
}

// Start lauches the scheduler asynchronously.
func Start(c Controller) {
	cron := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	log := c.Logger.WithPrefix("[scheduler]")

	_, err := cron.AddFunc(c.Specification, func() {
		log := c.Logger.WithPrefix("[retention]")

		if err := Purge(c.Database, c.Storage, log); err != nil {
			log.Error(err)
		}
	})
	if err != nil {
		panic(err)
	}
	log.Info("Expired conversion task registred")

	cron.Start()
	log.Info("Scheduler is running")
}

// Purge removes the conversions whose TTL elapsed and cleans the storage.
// Conversions without a TTL are kept forever.
func Purge(db database.Client, backend storage.Backend, log logger.Logger) error {
	conversions, err := db.AllConversions()
	if err != nil {
		return err
	}

	for _, conversion := range conversions {
		if conversion.TTL.IsZero() {
			continue
		}

		if conversion.TTL.After(time.Now()) {
			continue
		}

		err = service.NewDestroyer(db, backend, conversion).Destroy()
		if err != nil {
			return err
		}

		log.Infof("Removed conversion %s", conversion.ID)
	}

	return backend.Cleanup()
}
