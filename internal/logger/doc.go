// Package logger wraps zap to provide:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and a per-logger level override,
//   - leveled convenience functions (DebugKV, InfoKV, ErrorKV, etc.).
//
// Components receive a context and take their logger from it, so the owner
// of a reducer decides how its trace output is named and filtered.
package logger
