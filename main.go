package main

import "github.com/cooklang/cookcli-sub000/cmd/cook"

func main() {
	cook.Execute()
}
