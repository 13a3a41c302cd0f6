// Package extensibility holds the pluggable pieces of declarative machines:
// expression guards, the action registry and event sources that feed
// services from channels and timers.
package extensibility
