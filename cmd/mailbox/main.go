package main

import "github.com/lu-zhengda/mailbox/internal/cli"

func main() {
	cli.Execute()
}
