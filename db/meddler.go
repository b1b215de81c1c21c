package db

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

// init registers tags to be used to read/write from SQL DBs using meddler
func init() {
	meddler.Default = meddler.SQLite
	meddler.Register("hash", HashMeddler{})
}

// HashMeddler stores a common.Hash as a 32 bytes blob
type HashMeddler struct{}

// PreRead is called before a Scan operation for fields that have the HashMeddler
func (HashMeddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	return new([]byte), nil
}

// PostRead is called after a Scan operation for fields that have the HashMeddler
func (HashMeddler) PostRead(fieldPtr, scanTarget interface{}) error {
	raw, ok := scanTarget.(*[]byte)
	if !ok || raw == nil {
		return fmt.Errorf("HashMeddler.PostRead: scan target is %T, expected *[]byte", scanTarget)
	}
	field, ok := fieldPtr.(*common.Hash)
	if !ok {
		return fmt.Errorf("HashMeddler.PostRead: field is %T, expected *common.Hash", fieldPtr)
	}
	if len(*raw) != common.HashLength {
		return fmt.Errorf("HashMeddler.PostRead: stored hash has %d bytes", len(*raw))
	}
	*field = common.BytesToHash(*raw)
	return nil
}

// PreWrite is called before an Insert or Update operation for fields that have the HashMeddler
func (HashMeddler) PreWrite(fieldPtr interface{}) (saveValue interface{}, err error) {
	field, ok := fieldPtr.(common.Hash)
	if !ok {
		return nil, fmt.Errorf("HashMeddler.PreWrite: field is %T, expected common.Hash", fieldPtr)
	}
	return field.Bytes(), nil
}
