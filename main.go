/*
Copyright © 2025 <admin@goswami.ru>
*/
package main

import "gitlab.com/bvgm/dcforum/cmd"

func main() {
	cmd.Execute()
}
