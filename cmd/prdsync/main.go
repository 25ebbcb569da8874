package main

import "beast-tins/internal/prdsync"

func main() {
	prdsync.Execute()
}
