package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tennis-watch/checker"
	"tennis-watch/client"
	"tennis-watch/config"
	"tennis-watch/logger"
	"tennis-watch/notify"
	"tennis-watch/storage"
)

// emptyResult is what downstream consumers read on a fatal error: a
// well-formed "nothing found" signal instead of no output at all.
const emptyResult = "[]"

func main() {
	log := logger.New()

	cfg, err := config.Load(time.Now())
	if err != nil {
		fail(log, err)
	}

	store := buildStore(cfg, log)
	api := client.New(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	chk := checker.New(api, log)

	var result interface{}
	var summary string
	if cfg.Detailed {
		detailed, err := chk.FindDetailedAvailability(cfg.Criteria)
		if err != nil {
			fail(log, err)
		}
		result = detailed
		summary = notify.RenderDetailed(detailed, cfg.Criteria.When())
	} else {
		fast, err := chk.FindAvailable(cfg.Criteria)
		if err != nil {
			fail(log, err)
		}
		result = fast
		summary = notify.RenderFacilities(fast, cfg.Criteria.When())
	}

	out, err := json.Marshal(result)
	if err != nil {
		fail(log, err)
	}
	fmt.Println(string(out))

	changed, err := storage.DetectChange(result, store, log)
	if err != nil {
		// A broken store must not swallow a notification.
		log.Warn("state store failed, notifying anyway", "error", err.Error())
		changed = true
	}

	if !changed {
		log.Info("result unchanged since last run, not notifying")
		return
	}

	for _, n := range buildNotifiers(cfg, log) {
		if err := n.Notify(summary, result); err != nil {
			log.Error("notification failed", "error", err.Error())
		}
	}
}

// fail logs the fatal error to the diagnostic channel and emits the
// empty-result sentinel on the primary output channel.
func fail(log logger.Logger, err error) {
	log.Error("fatal", "error", err.Error())
	fmt.Println(emptyResult)
	os.Exit(1)
}

func buildStore(cfg *config.Config, log logger.Logger) storage.Store {
	if cfg.StateBackend == "redis" {
		rs := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, 0)
		err := rs.Ping()
		if err == nil {
			return rs
		}
		log.Warn("redis unreachable, falling back to file store", "error", err.Error())
	}
	return storage.NewFileStore(cfg.StateFile)
}

func buildNotifiers(cfg *config.Config, log logger.Logger) []notify.Notifier {
	var notifiers []notify.Notifier

	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.WebhookURL, log))
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Error("telegram notifier unavailable", "error", err.Error())
		} else {
			notifiers = append(notifiers, tn)
		}
	}

	if len(notifiers) == 0 {
		log.Warn("no notifier configured, result only goes to stdout")
	}
	return notifiers
}
