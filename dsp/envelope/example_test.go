package envelope_test

import (
	"fmt"

	"github.com/cwbudde/voicefield/dsp/envelope"
)

func ExampleFollower() {
	f, err := envelope.NewFollower(0.025, 0.992)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// Rising edge approaches the target at the attack rate.
	f.Process(1)
	fmt.Printf("after attack: %.4f\n", f.Value())

	// Falling edge decays geometrically at the release rate.
	f.Process(0)
	fmt.Printf("after release: %.4f\n", f.Value())

	// Output:
	// after attack: 0.0250
	// after release: 0.0248
}
