package badgerjournal

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/FedorSmirnov89/enact"
	"github.com/dgraph-io/badger/v4"
)

func setRecord(txn *badger.Txn, rec *enact.Record) error {
	return setGOB(txn, recordKey(rec.Rev), rec)
}

func setGOB(txn *badger.Txn, k []byte, m any) error {
	var v bytes.Buffer
	if err := gob.NewEncoder(&v).Encode(m); err != nil {
		return err
	}

	if err := txn.Set(k, v.Bytes()); err != nil {
		return err
	}

	return nil
}

func getItemGOB(item *badger.Item, m any) error {
	if err := item.Value(func(val []byte) error {
		if err := gob.NewDecoder(bytes.NewBuffer(val)).Decode(m); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

func setLatestRecordRev(txn *badger.Txn, id enact.EnactableID, rev int64) error {
	return setInt64(txn, latestRecordRevKey(id), rev)
}

func getLatestRecordRev(txn *badger.Txn, id enact.EnactableID) (int64, error) {
	rev, err := getInt64(txn, latestRecordRevKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	return rev, nil
}

func setInt64(txn *badger.Txn, key []byte, v int64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))

	return txn.Set(key, b)
}

func getInt64(txn *badger.Txn, key []byte) (int64, error) {
	var val uint64
	var err error

	item, err := txn.Get(key)
	if err != nil {
		return 0, err
	}

	if err := item.Value(func(val0 []byte) error {
		defer func() {
			if recover() != nil {
				val = 0
				err = fmt.Errorf("value not uint64")
			}
		}()

		val = binary.BigEndian.Uint64(val0)
		return nil
	}); err != nil {
		return 0, err
	}

	return int64(val), err
}

func recordKey(rev int64) []byte {
	return []byte(fmt.Sprintf(`enact.records.%020d`, rev))
}

func latestRecordRevKey(id enact.EnactableID) []byte {
	return []byte(fmt.Sprintf(`enact.latest_records.%s`, id))
}
