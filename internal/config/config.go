// Package config holds process-wide settings of the core, mirroring the
// small mutable-flag style the rest of this codebase uses instead of
// threading a settings struct through every call.
package config

// IsTestMode records whether the checker runs under a test harness. Set
// once at process startup by whatever embeds the checker. No package in
// this module reads it; String() output does not depend on it.
var IsTestMode = false

// UnitConName is the nullary data constructor PrintMe reduces to at whnf.
const UnitConName = "()"
