package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
	"github.com/airpulse/aqi-prediction-service/internal/predict"
)

var validate = validator.New()

// Version is reported by the info and health endpoints.
const Version = "2.0.0"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *aqi.Service, models *predict.Registry, fallback aqi.Location) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AQI Prediction API",
			"version": Version,
			"status":  "online",
			"endpoints": fiber.Map{
				"live_data": "/live_data",
				"predict":   "/predict_live/{model_name}",
				"models":    "/models",
				"health":    "/health",
			},
			"available_models": models.Names(),
		})
	})

	app.Get("/models", func(c *fiber.Ctx) error {
		names := models.Names()
		return c.JSON(fiber.Map{
			"available_models": names,
			"model_count":      len(names),
			"status":           "loaded",
			"model_info":       models.Descriptions(),
		})
	})

	app.Get("/live_data", func(c *fiber.Ctx) error {
		q, err := parseReadingQuery(c, fallback, 24, 1)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := q.toLocation()
		readings, source := svc.FetchHistory(c.Context(), loc, q.Hours)
		loc.Name = svc.Label(loc)

		return c.JSON(fiber.Map{
			"location":        loc,
			"data_source":     source,
			"hours_fetched":   len(readings),
			"fetch_timestamp": time.Now().UTC(),
			"data":            readings,
		})
	})

	predictLive := func(c *fiber.Ctx) error {
		q, err := parseReadingQuery(c, fallback, 48, 24)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		modelName := c.Params("model_name")
		if _, err := models.Get(modelName); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		loc := q.toLocation()
		readings, _ := svc.FetchHistory(c.Context(), loc, q.Hours)
		if len(readings) == 0 {
			return fiber.NewError(fiber.StatusServiceUnavailable, "unable to fetch live air quality data")
		}

		prediction, err := models.Predict(c.Context(), modelName, readings)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "prediction failed")
		}

		loc.Name = svc.Label(loc)
		latest := readings[len(readings)-1]
		category := aqi.Classify(latest.AQI)

		return c.JSON(fiber.Map{
			"location":             loc,
			"model_used":           modelName,
			"predictions":          predictionBody(prediction),
			"prediction_timestamp": prediction.Timestamp,
			"input_hours":          len(readings),
			"current_conditions": fiber.Map{
				"timestamp": latest.Timestamp,
				"aqi":       latest.AQI,
				"pm2_5":     latest.PM25,
				"pm10":      latest.PM10,
				"trend":     aqi.Trend(readings),
				"category":  category,
				"color":     category.Color(),
			},
		})
	}
	app.Get("/predict_live/:model_name", predictLive)
	app.Post("/predict_live/:model_name", predictLive)

	app.Post("/predict_from_current/:model_name", func(c *fiber.Ctx) error {
		var in currentInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		modelName := c.Params("model_name")
		if _, err := models.Get(modelName); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		history := aqi.SynthesizeFromCurrent(in.PM25, in.PM10, in.CO, in.O3, in.NO2, in.SO2, time.Now().UTC())

		prediction, err := models.Predict(c.Context(), modelName, history)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "prediction failed")
		}

		return c.JSON(fiber.Map{
			"model_used":           modelName,
			"predictions":          predictionBody(prediction),
			"input_data":           in,
			"prediction_timestamp": prediction.Timestamp,
		})
	})
}

func predictionBody(p aqi.Prediction) fiber.Map {
	return fiber.Map{
		"aqi_8h":     p.AQI8h,
		"aqi_12h":    p.AQI12h,
		"aqi_24h":    p.AQI24h,
		"confidence": p.Confidence,
	}
}

// readingQuery holds query parameters shared by the data and prediction
// endpoints. The hours lower bound differs between them.
type readingQuery struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Hours     int
}

func (q readingQuery) toLocation() aqi.Location {
	return aqi.Location{Latitude: q.Latitude, Longitude: q.Longitude}
}

func parseReadingQuery(c *fiber.Ctx, fallback aqi.Location, defaultHours, minHours int) (readingQuery, error) {
	q := readingQuery{
		Latitude:  c.QueryFloat("latitude", fallback.Latitude),
		Longitude: c.QueryFloat("longitude", fallback.Longitude),
		Hours:     c.QueryInt("hours", defaultHours),
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	if q.Hours < minHours || q.Hours > 120 {
		return q, errors.New("hours out of range")
	}

	return q, nil
}

// currentInput is the request body for predictions from a single current
// reading. CO is in mg/m³, the rest in µg/m³.
type currentInput struct {
	PM25 float64 `json:"pm25" validate:"gte=0,lte=500"`
	PM10 float64 `json:"pm10" validate:"gte=0,lte=500"`
	CO   float64 `json:"co" validate:"gte=0,lte=50"`
	O3   float64 `json:"o3" validate:"gte=0,lte=500"`
	NO2  float64 `json:"no2" validate:"gte=0,lte=500"`
	SO2  float64 `json:"so2" validate:"gte=0,lte=500"`
}
