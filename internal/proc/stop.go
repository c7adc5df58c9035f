package proc

// StopMatching sends a termination request to every running process whose
// command line contains pattern and returns the matches that were signaled.
// Zero matches is a no-op, not an error. Signal failures on individual PIDs
// are ignored: a target that exited between the scan and the signal is
// indistinguishable from one that was never there.
func StopMatching(pattern string) ([]Match, error) {
	matches, err := Scan(pattern)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		_ = terminateProcess(m.PID)
	}
	return matches, nil
}
