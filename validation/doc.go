// Package validation checks settings before any command runs.
//
// Struct tags cover most rules; field names in messages follow the
// mapstructure keys used in the settings file:
//
//	type ProbeConfig struct {
//	    Program  string        `mapstructure:"program" validate:"required"`
//	    Duration time.Duration `mapstructure:"duration" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
//
// Two custom tags are registered: relpath (a path that stays inside the
// directory it is joined to) and pkgname (a package name a package manager
// accepts).
//
// Rules that span fields use the collecting Validator:
//
//	v := validation.New()
//	v.RelativePath("assets[0].target", target)
//	err := v.Validate()
package validation
