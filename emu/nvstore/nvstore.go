/*
 * PCRTC - NVRAM image store
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package nvstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Size of a stored image.
const ImageSize = 128

// Returned by Load when no image exists for a key.
var ErrNotFound = errors.New("nvram image not found")

// FileStore keeps one file per key in a directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Return file name for key.
func (store *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid nvram key: %q", key)
	}
	return filepath.Join(store.Dir, key), nil
}

// Load image for key. Short images are padded with 0xff.
func (store *FileStore) Load(key string) ([]byte, error) {
	name, err := store.path(key)
	if err != nil {
		return nil, err
	}

	unlock, err := lockDir(store.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock %s: %w", store.Dir, err)
	}
	defer unlock()

	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return pad(data), nil
}

// Save image for key. The image is written to a temporary file which is
// renamed over the old one, so a failed save leaves the old image.
func (store *FileStore) Save(key string, data []byte) error {
	if len(data) != ImageSize {
		return fmt.Errorf("nvram image size %d, expected %d", len(data), ImageSize)
	}
	name, err := store.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(store.Dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", store.Dir, err)
	}

	unlock, err := lockDir(store.Dir)
	if err != nil {
		return fmt.Errorf("lock %s: %w", store.Dir, err)
	}
	defer unlock()

	tmp, err := os.CreateTemp(store.Dir, key+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, name)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Return copy of data of ImageSize bytes.
func pad(data []byte) []byte {
	image := make([]byte, ImageSize)
	n := copy(image, data)
	for i := n; i < ImageSize; i++ {
		image[i] = 0xff
	}
	return image
}

// MemStore keeps images in memory.
type MemStore struct {
	Images  map[string][]byte
	LoadErr error // Returned by Load when set.
	SaveErr error // Returned by Save when set.
	Saves   int   // Number of successful saves.
}

func NewMemStore() *MemStore {
	return &MemStore{Images: map[string][]byte{}}
}

func (store *MemStore) Load(key string) ([]byte, error) {
	if store.LoadErr != nil {
		return nil, store.LoadErr
	}
	data, ok := store.Images[key]
	if !ok {
		return nil, ErrNotFound
	}
	return pad(data), nil
}

func (store *MemStore) Save(key string, data []byte) error {
	if store.SaveErr != nil {
		return store.SaveErr
	}
	if len(data) != ImageSize {
		return fmt.Errorf("nvram image size %d, expected %d", len(data), ImageSize)
	}
	store.Images[key] = append([]byte(nil), data...)
	store.Saves++
	return nil
}
