package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Highlight is a titled paragraph of a review.
type Highlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Review is the AI-written review of a phone.
type Review struct {
	Summary          string      `json:"summary"`
	Pros             []string    `json:"pros"`
	Cons             []string    `json:"cons"`
	Verdict          string      `json:"verdict"`
	PerformanceScore Score       `json:"performanceScore"`
	CameraScore      Score       `json:"cameraScore"`
	BatteryScore     Score       `json:"batteryScore"`
	ValueScore       Score       `json:"valueScore"`
	DisplayScore     Score       `json:"displayScore"`
	Highlights       []Highlight `json:"highlights"`
	BestFor          []string    `json:"bestFor"`
	Comparison       string      `json:"comparison"`
}

// Score is a 0..100 rating. Models sometimes quote numbers or overshoot the
// range, so decoding accepts numeric strings and clamps.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}

	val, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return fmt.Errorf("invalid score %s: %w", data, err)
	}

	*s = Score(math.Round(math.Min(100, math.Max(0, val))))

	return nil
}

// FlexString decodes any JSON scalar into text.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var val any
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}

	switch v := val.(type) {
	case nil:
		*f = ""
	case string:
		*f = FlexString(strings.TrimSpace(v))
	case float64:
		*f = FlexString(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		if v {
			*f = "Yes"
		} else {
			*f = "No"
		}
	default:
		*f = FlexString(bytes.TrimSpace(data))
	}

	return nil
}

// Specs is the generated specification sheet of a phone.
type Specs struct {
	Processor        FlexString `json:"processor"`
	RAM              FlexString `json:"ram"`
	Storage          FlexString `json:"storage"`
	Battery          FlexString `json:"battery"`
	MainCamera       FlexString `json:"main_camera"`
	SelfieCamera     FlexString `json:"selfie_camera"`
	DisplaySize      FlexString `json:"display_size"`
	DisplayType      FlexString `json:"display_type"`
	OS               FlexString `json:"os"`
	Network          FlexString `json:"network"`
	Weight           FlexString `json:"weight"`
	Dimensions       FlexString `json:"dimensions"`
	ScreenResolution FlexString `json:"screen_resolution"`
	ScreenProtection FlexString `json:"screen_protection"`
	SIMSupport       FlexString `json:"sim_support"`
	ReleaseDate      FlexString `json:"release_date"`
	GPU              FlexString `json:"gpu"`
	CardSlot         FlexString `json:"card_slot"`
	Bluetooth        FlexString `json:"bluetooth"`
	WiFi             FlexString `json:"wifi"`
	NFC              FlexString `json:"nfc"`
	USB              FlexString `json:"usb"`
	FastCharging     FlexString `json:"fast_charging"`
	WirelessCharging FlexString `json:"wireless_charging"`
	FrontFlash       FlexString `json:"front_flash"`
	BackFlash        FlexString `json:"back_flash"`
	VideoRecording   FlexString `json:"video_recording"`
}

// Recommendation is one ranked suggestion for a budget.
type Recommendation struct {
	PhoneID    string   `json:"phone_id"`
	Rank       int      `json:"rank"`
	MatchScore Score    `json:"matchScore"`
	Reason     string   `json:"reason"`
	BestFor    []string `json:"bestFor"`
	Phone      *Phone   `json:"phone"`
}

// Recommendations is the reply of the recommendation service.
type Recommendations struct {
	Recommendations []Recommendation `json:"recommendations"`
	Summary         string           `json:"summary,omitempty"`
	Message         string           `json:"message,omitempty"`
}

// BackfillFailure names a phone whose specs could not be generated.
type BackfillFailure struct {
	PhoneID string `json:"phone_id"`
	Name    string `json:"name"`
	Error   string `json:"error"`
}

// BackfillReport summarizes a bulk spec generation run.
type BackfillReport struct {
	Total    int               `json:"total"`
	Updated  int               `json:"updated"`
	Failures []BackfillFailure `json:"failures"`
}
