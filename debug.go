// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug

package qrobdd

import (
	"log"
	"os"
)

const debugEnabled bool = true
const logLevel int = 1

func init() {
	log.SetOutput(os.Stdout)
}
