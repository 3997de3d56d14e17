package forecast

import (
	"strings"
	"time"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/model/external"
)

// forecastTimeLayout is the layout of OpenWeather's dt_txt, always UTC
const forecastTimeLayout = "2006-01-02 15:04:05"

// convertForecastResponse maps forecast steps to samples. A step whose time
// cannot be read yields a sample with a zero timestamp, which the evaluator skips.
func convertForecastResponse(response *external.OpenWeatherForecastResponse) []entity.WeatherSample {
	if response == nil {
		return nil
	}

	samples := make([]entity.WeatherSample, 0, len(response.List))
	for _, item := range response.List {
		conditions := make([]string, 0, len(item.Weather))
		for _, condition := range item.Weather {
			if label := strings.TrimSpace(condition.Main); label != "" {
				conditions = append(conditions, label)
			}
		}

		samples = append(samples, entity.WeatherSample{
			Timestamp:  sampleTime(item),
			Conditions: conditions,
		})
	}
	return samples
}

func sampleTime(item external.OpenWeatherItem) time.Time {
	if item.DtTxt != "" {
		if t, err := time.ParseInLocation(forecastTimeLayout, item.DtTxt, time.UTC); err == nil {
			return t
		}
	}
	if item.Dt > 0 {
		return time.Unix(item.Dt, 0).UTC()
	}
	return time.Time{}
}
