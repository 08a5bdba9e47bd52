package alembic

import (
	"fmt"
	"io"
	"sync/atomic"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/exp/mmap"

	"github.com/robert-malhotra/go-alembic/internal/binary"
	"github.com/robert-malhotra/go-alembic/internal/header"
	"github.com/robert-malhotra/go-alembic/internal/message"
	"github.com/robert-malhotra/go-alembic/internal/ogawa"
)

// Children of the root group.
const (
	rootArchiveVersion = iota
	rootLibraryVersion
	rootTopObject
	rootMetadata
	rootTimeSamplings
	rootIndexedMetadata
	rootChildren
)

// TopObjectName is the name of the object at the top of every archive.
const TopObjectName = "ABC"

// Archive represents an open Alembic archive.
type Archive struct {
	path   string
	closer io.Closer
	logger *zap.Logger
	store  *ogawa.Store
	header *header.Header
	root   *ogawa.Group
	closed atomic.Bool

	archiveVersion uint32
	libraryVersion uint32
	metadata       Metadata
	indexed        []Metadata
	timeSamplings  []*TimeSampling
}

// Open memory-maps the file at path and opens it as an archive.
func Open(path string, opts ...Option) (*Archive, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	a, err := OpenReader(ra, int64(ra.Len()), opts...)
	if err != nil {
		ra.Close()
		return nil, err
	}
	a.path = path
	a.closer = ra
	return a, nil
}

// OpenReader opens an archive over the first size bytes of r. The caller
// keeps ownership of r.
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*Archive, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	reader := binary.NewReader(r, size)
	h, err := header.Read(reader)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	a := &Archive{
		logger: o.logger,
		store:  ogawa.NewStore(reader, o.logger, o.cache),
		header: h,
	}

	a.root, err = a.store.ResolveGroup(ogawa.GroupRef(h.RootOffset))
	if err != nil {
		return nil, fmt.Errorf("reading root group: %w", err)
	}
	if a.root.Len() < rootChildren {
		return nil, fmt.Errorf("%w: root group has %d children, want %d",
			ErrInvalidData, a.root.Len(), rootChildren)
	}

	if a.archiveVersion, err = a.readVersion(rootArchiveVersion); err != nil {
		return nil, fmt.Errorf("reading archive version: %w", err)
	}
	if a.libraryVersion, err = a.readVersion(rootLibraryVersion); err != nil {
		return nil, fmt.Errorf("reading library version: %w", err)
	}
	if err := a.readMetadata(); err != nil {
		return nil, err
	}
	if err := a.readTimeSamplings(); err != nil {
		return nil, err
	}

	a.logger.Debug("opened archive",
		zap.Uint32("archiveVersion", a.archiveVersion),
		zap.Uint32("libraryVersion", a.libraryVersion),
		zap.Int("indexedMetadata", len(a.indexed)),
		zap.Int("timeSamplings", len(a.timeSamplings)))
	return a, nil
}

func (a *Archive) readVersion(child int) (uint32, error) {
	data, err := a.store.ChildData(a.root, child)
	if err != nil {
		return 0, err
	}
	return binary.FromBytes(data).ReadUint32()
}

func (a *Archive) readMetadata() error {
	data, err := a.store.ChildData(a.root, rootMetadata)
	if err != nil {
		return fmt.Errorf("reading archive metadata: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: archive metadata is not valid UTF-8", ErrInvalidData)
	}
	if a.metadata, err = ParseMetadata(string(data)); err != nil {
		return fmt.Errorf("parsing archive metadata: %w", err)
	}

	data, err = a.store.ChildData(a.root, rootIndexedMetadata)
	if err != nil {
		return fmt.Errorf("reading metadata table: %w", err)
	}
	if a.indexed, err = ReadIndexedMetadata(data); err != nil {
		return fmt.Errorf("decoding metadata table: %w", err)
	}
	return nil
}

func (a *Archive) readTimeSamplings() error {
	data, err := a.store.ChildData(a.root, rootTimeSamplings)
	if err != nil {
		return fmt.Errorf("reading time samplings: %w", err)
	}
	recs, err := message.ParseTimeSamplings(data)
	if err != nil {
		return fmt.Errorf("decoding time samplings: %w", err)
	}

	for _, rec := range recs {
		a.timeSamplings = append(a.timeSamplings, newTimeSampling(rec))
	}
	if len(a.timeSamplings) == 0 {
		a.timeSamplings = []*TimeSampling{identityTimeSampling()}
	}
	return nil
}

// Close releases the archive. Objects and properties read from it must not
// be used afterwards.
func (a *Archive) Close() error {
	if a.closed.Swap(true) {
		return nil
	}
	a.store.Reset()
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *Archive) checkOpen() error {
	if a.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Path returns the file path, or "" for archives opened with OpenReader.
func (a *Archive) Path() string {
	return a.path
}

// ArchiveVersion returns the Alembic archive format version.
func (a *Archive) ArchiveVersion() uint32 {
	return a.archiveVersion
}

// LibraryVersion returns the version of the library that wrote the archive.
func (a *Archive) LibraryVersion() uint32 {
	return a.libraryVersion
}

// Metadata returns the archive-level metadata.
func (a *Archive) Metadata() Metadata {
	return a.metadata
}

// IndexedMetadata returns the archive metadata table. Entry 0 is the empty mapping.
func (a *Archive) IndexedMetadata() []Metadata {
	return a.indexed
}

// NumTimeSamplings returns the number of time samplings.
func (a *Archive) NumTimeSamplings() int {
	return len(a.timeSamplings)
}

// TimeSamplings returns every time sampling. Index 0 is the identity sampling
// in archives written by conforming writers.
func (a *Archive) TimeSamplings() []*TimeSampling {
	return a.timeSamplings
}

// TimeSampling returns time sampling i.
func (a *Archive) TimeSampling(i int) (*TimeSampling, error) {
	if i < 0 || i >= len(a.timeSamplings) {
		return nil, fmt.Errorf("%w: time sampling %d of %d", ErrInvalidData, i, len(a.timeSamplings))
	}
	return a.timeSamplings[i], nil
}

// MaxSample returns the largest sample count written with time sampling i.
func (a *Archive) MaxSample(i int) (uint32, error) {
	ts, err := a.TimeSampling(i)
	if err != nil {
		return 0, err
	}
	return ts.MaxSample(), nil
}

// Top returns the top object of the hierarchy.
func (a *Archive) Top() (*Object, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	ref, err := a.root.Child(rootTopObject)
	if err != nil {
		return nil, err
	}
	if !ref.IsGroup() {
		return nil, fmt.Errorf("%w: top object is %s", ErrInvalidData, ref)
	}
	return newObject(a, ref, ObjectHeader{Name: TopObjectName, FullName: "/"})
}

// metadataAt resolves a metadata index, or parses inline metadata.
func (a *Archive) metadataAt(index uint8, inline string) (Metadata, error) {
	if index == message.InlineMetadata {
		return ParseMetadata(inline)
	}
	if int(index) >= len(a.indexed) {
		return Metadata{}, fmt.Errorf("%w: metadata index %d of %d", ErrInvalidData, index, len(a.indexed))
	}
	return a.indexed[index], nil
}
