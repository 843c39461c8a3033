package cli

import (
	"context"
	"fmt"

	"github.com/bloom-app/bloom/internal/weather"
)

type WeatherCmd struct {
	Lat float64 `help:"Latitude." default:"39.9042"`
	Lon float64 `help:"Longitude." default:"116.4074"`
}

func (c *WeatherCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	w, fetchErr := ctx.Weather.Current(context.Background(), c.Lat, c.Lon)
	if fetchErr != nil {
		fmt.Println("(live weather unavailable, showing defaults)")
	}

	fmt.Printf("%s, %.0f°C\n", w.Condition, w.TempC)
	fmt.Printf("Humidity %d%%, wind %.0f km/h\n", w.Humidity, w.WindKph)
	if w.Location != "Unknown" {
		fmt.Printf("Location: %s\n", w.Location)
	}

	switch weather.EffectFor(w, eng.Settings().WeatherPreference) {
	case weather.EffectRain:
		fmt.Println("🌧 Rainy day, take an umbrella!")
	case weather.EffectSnow:
		fmt.Println("❄ It's snowing out there!")
	}
	return nil
}
