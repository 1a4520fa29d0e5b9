package keygen_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStateMachines(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DKG and Signing State Machine Suite")
}
