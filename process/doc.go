// Package process runs external programs.
//
// Two execution modes are provided. Run spawns a child with both output
// streams captured in memory and blocks until it exits. Stream spawns a child
// that inherits the parent's output streams and returns a Handle that can
// interrupt it with Kill and reap it with Wait.
//
// Cancellation is always cooperative: the child receives SIGINT (a console
// break event on Windows) and is never killed forcefully.
//
//	res, err := process.Run(ctx, process.NewCommand("pacman", "-Sy"))
//	if err != nil {
//		return err // the program could not be started
//	}
//	if !res.Success() {
//		res.Log(log)
//	}
package process
