// Package rewrite implements the log4j-to-logback appender migration as a
// source-to-source rule over parsed units.
//
// The rule runs in stages: a cheap usage gate decides whether a unit is
// worth visiting at all, a hierarchy match picks the classes whose extends
// clause gets replaced, the member policy removes or renames the lifecycle
// methods the new base class handles itself, and the queued follow-up passes
// retarget event and layout types everywhere else in the unit. Every stage
// fails closed: a type that did not resolve is never touched.
package rewrite

import "relog/internal/types"

// Rule carries the identities and names one migration works with. The
// defaults encode the log4j 1.x to logback migration; a project config can
// override any of them.
type Rule struct {
	// LegacyBase is the superclass that marks a class for migration.
	LegacyBase types.Identity
	// NewBase replaces LegacyBase in the extends clause.
	NewBase types.Identity
	// NewEvent parameterizes NewBase and replaces LegacyEvent everywhere.
	LegacyEvent types.Identity
	NewEvent    types.Identity
	// LegacyLayout is retargeted to NewLayout, and its format method is
	// renamed at call sites.
	LegacyLayout types.Identity
	NewLayout    types.Identity

	// Template is the snippet the new extends clause is synthesized from.
	// Its simple names must bind to NewBase and NewEvent.
	Template string

	// FormatName on LegacyLayout receivers becomes DoLayoutName.
	FormatName   string
	DoLayoutName string
	// CloseName members of matched classes are removed when their body is
	// present and empty, renamed to StopName otherwise.
	CloseName string
	StopName  string
	// RequiresLayoutName members of matched classes are always removed.
	RequiresLayoutName string

	// Inherited names the fields a matched class sees through LegacyBase,
	// so receivers like the protected layout field resolve to a type the
	// unit never declares.
	Inherited map[string]types.Identity
}

// Default returns the log4j 1.x AppenderSkeleton to logback AppenderBase
// migration.
func Default() Rule {
	return Rule{
		LegacyBase:   "org.apache.log4j.AppenderSkeleton",
		NewBase:      "ch.qos.logback.core.AppenderBase",
		LegacyEvent:  "org.apache.log4j.spi.LoggingEvent",
		NewEvent:     "ch.qos.logback.classic.spi.ILoggingEvent",
		LegacyLayout: "org.apache.log4j.Layout",
		NewLayout:    "ch.qos.logback.core.LayoutBase",

		Template: "AppenderBase<ILoggingEvent>",

		FormatName:         "format",
		DoLayoutName:       "doLayout",
		CloseName:          "close",
		StopName:           "stop",
		RequiresLayoutName: "requiresLayout",

		Inherited: map[string]types.Identity{
			"layout":    "org.apache.log4j.Layout",
			"name":      "java.lang.String",
			"threshold": "org.apache.log4j.Priority",
		},
	}
}

// ResolveOptions builds the resolver configuration the rule needs: the
// inherited-field table keyed by the legacy base.
func (r Rule) ResolveOptions() map[types.Identity]map[string]types.Identity {
	if len(r.Inherited) == 0 {
		return nil
	}
	return map[types.Identity]map[string]types.Identity{
		r.LegacyBase: r.Inherited,
	}
}
