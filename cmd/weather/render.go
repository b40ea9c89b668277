package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goliatone/go-weather-cache/weather"
)

func renderList(w io.Writer, list []weather.MainInfo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, item := range list {
		fmt.Fprintf(tw, "%s\t%d°C\t%s\n", item.City, item.Temp, item.Main)
	}
	_ = tw.Flush()
}

func renderDetailed(w io.Writer, d weather.Detailed, source string) {
	fmt.Fprintf(w, "%s: %d°C, %s\n", d.Weather.City, d.Weather.Temp, d.Weather.Main)
	fmt.Fprintf(w, "  feels like %d°C, wind %.1f m/s, humidity %d%%, pressure %d hPa\n",
		d.FeelsLike, d.WindSpeed, d.Humidity, d.Pressure)
	if source != "" {
		fmt.Fprintf(w, "  (%s)\n", source)
	}
}

func renderForecast(w io.Writer, f weather.Forecast) {
	renderDetailed(w, f.Detailed, "")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, item := range f.List {
		fmt.Fprintf(tw, "  %s\t%d°C\n", item.Date, item.Temp)
	}
	_ = tw.Flush()
}
