package config

import "os"

func IsDebug() bool {
	return os.Getenv("SIDENOTE_DEBUG") == "1"
}
