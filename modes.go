package swifttoo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// XRTMode is an X-ray Telescope readout mode.
type XRTMode int

const (
	XRTAuto XRTMode = 0
	XRTNull XRTMode = 1
	XRTWT   XRTMode = 6 // Windowed Timing
	XRTPC   XRTMode = 7 // Photon Counting
)

var xrtModeNames = map[XRTMode]string{
	XRTAuto: "Auto",
	XRTNull: "Null",
	2:       "ShortIM",
	3:       "LongIM",
	4:       "PUPD",
	5:       "LRPD",
	XRTWT:   "WT",
	XRTPC:   "PC",
	150:     "PC_150",
	200:     "PC_200",
}

func (m XRTMode) String() string {
	if name, ok := xrtModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(m))
}

// ParseXRTMode accepts a mode name ("WT", "PC", "Auto") or its number.
func ParseXRTMode(raw string) (XRTMode, error) {
	trimmed := strings.TrimSpace(raw)
	for mode, name := range xrtModeNames {
		if strings.EqualFold(name, trimmed) {
			return mode, nil
		}
	}
	if value, err := strconv.Atoi(trimmed); err == nil {
		if _, ok := xrtModeNames[XRTMode(value)]; ok {
			return XRTMode(value), nil
		}
	}
	return 0, fmt.Errorf("unknown XRT mode %q", raw)
}

// UnmarshalJSON accepts mode numbers or names.
func (m *XRTMode) UnmarshalJSON(data []byte) error {
	var number int
	if err := json.Unmarshal(data, &number); err == nil {
		*m = XRTMode(number)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("bad XRT mode %s", string(data))
	}
	mode, err := ParseXRTMode(name)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m XRTMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

// UVOTMode is an Ultraviolet/Optical Telescope mode word.
type UVOTMode uint32

// UVOTFilterOfTheDay requests whichever single filter is in rotation.
const UVOTFilterOfTheDay UVOTMode = 0x9999

func (m UVOTMode) String() string {
	return fmt.Sprintf("0x%04x", uint32(m))
}

// ParseUVOTMode accepts hex ("0x30ed"), bare hex digits or decimal.
func ParseUVOTMode(raw string) (UVOTMode, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return 0, fmt.Errorf("empty UVOT mode")
	}
	if strings.HasPrefix(trimmed, "0x") {
		value, err := strconv.ParseUint(trimmed[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("bad UVOT mode %q", raw)
		}
		return UVOTMode(value), nil
	}
	if value, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		return UVOTMode(value), nil
	}
	value, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad UVOT mode %q", raw)
	}
	return UVOTMode(value), nil
}

// UnmarshalJSON accepts mode numbers or hex strings.
func (m *UVOTMode) UnmarshalJSON(data []byte) error {
	var number uint32
	if err := json.Unmarshal(data, &number); err == nil {
		*m = UVOTMode(number)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("bad UVOT mode %s", string(data))
	}
	mode, err := ParseUVOTMode(text)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m UVOTMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
