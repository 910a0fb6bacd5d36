// Package errors provides structured, coded errors for microfun.
//
// Every error the framework reports on purpose carries a stable code
// (e.g. "E001") registered in this package. The code maps to:
//   - a category (runtime, render, config, protocol, storage, cli)
//   - a short message
//   - a longer explanation
//
// Two errors with the same code match under errors.Is, so the registry
// entries double as sentinels:
//
//	var ErrInvalidCommandResult = errors.New("E001")
//
//	if errors.Is(err, ErrInvalidCommandResult) { ... }
//
// # Usage
//
//	err := errors.New("E120").
//	    WithDetail("Failed to parse microfun.yaml: line 3").
//	    WithSuggestion("Check the indentation of the frame block")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E120: Invalid configuration file
//	//
//	//   Failed to parse microfun.yaml: line 3
//	//
//	//   Hint: Check the indentation of the frame block
package errors
