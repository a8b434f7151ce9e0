package config

import "os"

func IsDebug() bool {
	return os.Getenv("RAGDESK_DEBUG") == "1"
}
