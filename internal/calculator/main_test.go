package calculator

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	if err := InitMetrics(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
