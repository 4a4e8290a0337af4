package crmsvc

import (
	"os"
	"testing"

	"ops_console/internal/global"
)

func TestMain(m *testing.M) {
	global.InitValidator()
	os.Exit(m.Run())
}
