// Package logger wraps zerolog with the field conventions used across the
// query packages.
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "prodquery")
//	log.WithComponent("catalog").Debug("sorted", logger.Fields("keys", "name:asc", "count", 12))
//
// A process-wide logger is available through Init / GetGlobalLogger, and
// named loggers can be registered and fetched with Register / Get.
package logger
