package overlays

// Preset maps a named quality tier to concrete encoder parameters for
// both the software and the hardware encoder.
type Preset struct {
	X264Preset  string `yaml:"x264_preset"`
	CRF         int    `yaml:"crf"`
	NvencPreset string `yaml:"nvenc_preset"`
	NvencCQ     int    `yaml:"nvenc_cq"`
}

// DefaultPresets returns the built-in quality tiers.
func DefaultPresets() map[string]Preset {
	return map[string]Preset{
		"fastest":  {X264Preset: "veryfast", CRF: 26, NvencPreset: "p2", NvencCQ: 30},
		"fast":     {X264Preset: "fast", CRF: 23, NvencPreset: "p4", NvencCQ: 26},
		"balanced": {X264Preset: "medium", CRF: 21, NvencPreset: "p5", NvencCQ: 23},
		"quality":  {X264Preset: "slow", CRF: 19, NvencPreset: "p7", NvencCQ: 19},
	}
}
