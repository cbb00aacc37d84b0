package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Locale picks the language of the status label, order note and notice.
	Locale string
	// StatusCountsSchedule is a cron expression with seconds.
	StatusCountsSchedule string
	StatusCountsTTL      time.Duration
	LogLevel             string
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}
