package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"voyago/config"
	tripRepo "voyago/database/repository/trip"
	"voyago/models"
	"voyago/services/alerts"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// InitDisruptionWorker runs the async disruption monitor in background. It
// consumes the checks scheduled when itineraries are saved, fetches the
// forecast for the trip's first day and queues a travel alert when the
// outlook is severe.
func InitDisruptionWorker(trips tripRepo.TripRepository, weather alerts.WeatherClient, store alerts.Store) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(alerts.TypeDisruptionCheck, handleDisruptionCheck(trips, weather, store))

	go func() {
		log.Println("[DisruptionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DisruptionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DisruptionWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleDisruptionCheck(trips tripRepo.TripRepository, weather alerts.WeatherClient, store alerts.Store) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p alerts.DisruptionCheckPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[DisruptionCheck] invalid payload: %v", err)
			return err
		}

		itinerary, err := trips.GetItinerary(ctx, p.ItineraryID)
		if err != nil {
			return err
		}
		if itinerary == nil {
			// Itinerary deleted since the check was scheduled.
			return nil
		}

		forecast, err := weather.DailyForecast(ctx, itinerary.Geo, itinerary.StartDate)
		if err != nil {
			log.Printf("[DisruptionCheck] forecast lookup failed for %s: %v", p.ItineraryID, err)
			return err
		}
		if !forecast.Severe() {
			return nil
		}

		alert := models.TravelAlert{
			ID:          uuid.NewString(),
			UserID:      p.UserID,
			ItineraryID: p.ItineraryID,
			Headline:    fmt.Sprintf("Rough weather expected for %q", itinerary.Name),
			Detail: fmt.Sprintf(
				"The forecast for %s on %s shows a %d%% chance of precipitation. Ask the assistant for indoor alternatives.",
				itinerary.Location, forecast.Date, forecast.PrecipProbability,
			),
			CreatedAt: time.Now(),
		}
		if err := store.Push(ctx, alert); err != nil {
			log.Printf("[DisruptionCheck] failed to queue alert: %v", err)
			return err
		}
		return nil
	}
}
