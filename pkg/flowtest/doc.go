// Package flowtest provides testing helpers for mounted flow apps.
//
// A Harness mounts an app on a manual frame clock and a recording target,
// so a test decides exactly when frames happen and can inspect every draw:
//
//	func TestCounter(t *testing.T) {
//	    h := flowtest.NewHarness(t, Model{}, View)
//	    h.Click("+")
//	    h.Click("+")
//	    h.Frame()
//	    h.ExpectDraws(2) // initial + one batched frame
//	    h.ExpectContains("Count: 2")
//	}
package flowtest
