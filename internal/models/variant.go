package models

// Variant is one of the two fixed audit configurations.
type Variant string

const (
	VariantMobile  Variant = "mobile"
	VariantDesktop Variant = "desktop"
)

// AllVariants returns the variants in the order they are audited and recorded.
func AllVariants() []Variant {
	return []Variant{VariantMobile, VariantDesktop}
}

// String returns the variant name
func (v Variant) String() string {
	return string(v)
}

// VariantProfile is the resolved flag set for one variant. It is built once per
// run and never mutated afterwards.
type VariantProfile struct {
	Variant     Variant
	PresetFlags []string
}

// BuildVariantProfiles returns the mobile (engine defaults) and desktop
// profiles, in audit order. extraFlags are appended to both.
func BuildVariantProfiles(desktopPreset string, extraFlags []string) []VariantProfile {
	mobile := VariantProfile{Variant: VariantMobile}
	desktop := VariantProfile{Variant: VariantDesktop}
	if desktopPreset != "" {
		desktop.PresetFlags = append(desktop.PresetFlags, "--preset="+desktopPreset)
	}
	if len(extraFlags) > 0 {
		mobile.PresetFlags = append(mobile.PresetFlags, extraFlags...)
		desktop.PresetFlags = append(desktop.PresetFlags, extraFlags...)
	}
	return []VariantProfile{mobile, desktop}
}

