// Package logging is the structured logging facade used by widgets, the
// timer scheduler and the demo binary. The only backend is zerolog.
package logging
