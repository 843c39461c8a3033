package cli

import (
	"fmt"
	"time"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	s := eng.Settings()
	fmt.Printf("Theme:              %s\n", s.Theme)
	fmt.Printf("Language:           %s\n", s.Language)
	fmt.Printf("Pet name:           %s\n", s.PetName)
	fmt.Printf("Weather preference: %s\n", s.WeatherPreference)
	fmt.Printf("Sound effects:      %t\n", s.SoundEffects)
	fmt.Printf("Notification time:  %s\n", s.NotificationTime)
	return nil
}

type SettingsSetCmd struct {
	Theme            string `help:"Theme: auto, light, or dark."`
	Language         string `help:"Interface language code."`
	PetName          string `help:"Companion name."`
	Weather          string `help:"Weather preference: all, no-rain, or no-snow."`
	NotificationTime string `help:"Daily reminder time (HH:MM)."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	s := eng.Settings()
	if c.Theme != "" {
		s.Theme = c.Theme
	}
	if c.Language != "" {
		s.Language = c.Language
	}
	if c.PetName != "" {
		s.PetName = c.PetName
	}
	if c.Weather != "" {
		s.WeatherPreference = c.Weather
	}
	if c.NotificationTime != "" {
		if _, err := time.Parse("15:04", c.NotificationTime); err != nil {
			return fmt.Errorf("invalid time %q, expected HH:MM", c.NotificationTime)
		}
		s.NotificationTime = c.NotificationTime
	}

	eng.SetSettings(s)
	fmt.Println("✓ Settings updated.")
	return nil
}

type PetCmd struct {
	Accessory string `help:"Accessory to wear: spring, summer, autumn, or winter." arg:"" optional:""`
}

func (c *PetCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	if c.Accessory == "" {
		pet := eng.Pet()
		fmt.Printf("%s is wearing: %s\n", eng.Settings().PetName, pet.CurrentAccessory)
		return nil
	}

	eng.SetPetAccessory(c.Accessory)
	fmt.Printf("%s is now wearing: %s\n", eng.Settings().PetName, c.Accessory)
	return nil
}
