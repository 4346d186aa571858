package common

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/bwmarrin/snowflake"
)

var snode *snowflake.Node

func init() {
	var err error
	snode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a time ordered unique int64 id
func UUIDint64() int64 {
	return snode.Generate().Int64()
}

// Sha256Hex returns the hex encoded sha256 of src
func Sha256Hex(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

func IfEmptyStr(src string, defval string) string {
	if strings.TrimSpace(src) == "" {
		return defval
	}
	return src
}
