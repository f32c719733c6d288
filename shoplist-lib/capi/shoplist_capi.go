// ABOUTME: C API wrapper for the Shoplist library to enable FFI usage
// ABOUTME: Exchanges JSON strings so native apps can share and redeem products

package main

// #include <stdlib.h>
import "C"
import (
	"context"
	"encoding/json"
	"sync"
	"unsafe"

	shoplist "shoplist-api/shoplist-lib"
)

var (
	mu     sync.Mutex
	client *shoplist.Client
)

func errorJSON(msg string) *C.char {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return C.CString(string(data))
}

func resultJSON(v interface{}, err error) *C.char {
	if err != nil {
		return errorJSON(err.Error())
	}
	data, err := json.Marshal(v)
	if err != nil {
		return errorJSON("failed to marshal response")
	}
	return C.CString(string(data))
}

func current() *shoplist.Client {
	mu.Lock()
	defer mu.Unlock()
	return client
}

//export ShoplistInit
func ShoplistInit() C.int {
	return initClient("memory", "")
}

//export ShoplistInitWithStore
func ShoplistInitWithStore(storeType *C.char, storePath *C.char) C.int {
	return initClient(C.GoString(storeType), C.GoString(storePath))
}

func initClient(storeType, storePath string) C.int {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		_ = client.Close()
		client = nil
	}

	cfg := shoplist.MemoryStore()
	if storeType == "sqlite" {
		cfg = shoplist.SQLiteStore(storePath)
	}

	c, err := shoplist.NewClient(shoplist.WithQuietMode(), shoplist.WithStoreConfig(cfg))
	if err != nil {
		return -1
	}
	client = c
	return 0
}

//export ShoplistClose
func ShoplistClose() {
	mu.Lock()
	defer mu.Unlock()
	if client != nil {
		_ = client.Close()
		client = nil
	}
}

//export ShoplistShareProducts
func ShoplistShareProducts(produtosJSON *C.char) *C.char {
	c := current()
	if c == nil {
		return errorJSON("client not initialized")
	}

	var produtos []json.RawMessage
	if err := json.Unmarshal([]byte(C.GoString(produtosJSON)), &produtos); err != nil {
		return errorJSON("invalid JSON input")
	}

	return resultJSON(c.ShareProducts(context.Background(), produtos))
}

//export ShoplistGetSharedProducts
func ShoplistGetSharedProducts(code *C.char) *C.char {
	c := current()
	if c == nil {
		return errorJSON("client not initialized")
	}
	return resultJSON(c.GetSharedProducts(context.Background(), C.GoString(code)))
}

//export ShoplistFreeString
func ShoplistFreeString(str *C.char) {
	C.free(unsafe.Pointer(str))
}

// Required for building as shared library
func main() {}
