package convert

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type archiveMember struct {
	file     *zip.File
	name     string
	strategy Strategy
}

// convertArchive rebuilds a zip archive from the members the registry can
// convert, in their original order. Unsupported members are dropped. The
// first failing member aborts the batch and no archive is returned.
func (r *Registry) convertArchive(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("%w: open archive: %w", ErrMalformedInput, err)
	}

	members := r.planArchive(zr.File)

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, member := range members {
		if err := r.convertMember(zw, member); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	r.logger.Debugw("Converted archive",
		"members", len(zr.File),
		"converted", len(members),
	)
	return out.Bytes(), nil
}

// planArchive keeps the members that have a strategy and a local name.
func (r *Registry) planArchive(files []*zip.File) []archiveMember {
	members := make([]archiveMember, 0, len(files))
	for _, file := range files {
		if !localName(file.Name) {
			r.logger.Debugw("Skipping archive member with unsafe path",
				"member", file.Name,
			)
			continue
		}
		stem, ext := SplitExt(file.Name)
		strategy, ok := r.Lookup(ext)
		if !ok {
			r.logger.Debugw("Skipping unsupported archive member",
				"member", file.Name,
			)
			continue
		}
		members = append(members, archiveMember{
			file:     file,
			name:     stem + strategy.Extension,
			strategy: strategy,
		})
	}
	return members
}

// localName rejects the names archive/zip reports as ErrInsecurePath.
func localName(name string) bool {
	return filepath.IsLocal(name) && !strings.Contains(name, `\`)
}

func (r *Registry) convertMember(zw *zip.Writer, member archiveMember) error {
	raw, err := readMember(member.file)
	if err != nil {
		return &BatchMemberError{Member: member.file.Name, Err: malformed(err)}
	}

	converted, err := member.strategy.Convert(raw)
	if err != nil {
		return &BatchMemberError{Member: member.file.Name, Err: err}
	}

	writer, err := zw.CreateHeader(&zip.FileHeader{
		Name:     member.name,
		Method:   zip.Deflate,
		Modified: member.file.Modified,
	})
	if err != nil {
		return fmt.Errorf("create archive entry %q: %w", member.name, err)
	}
	if _, err := writer.Write(converted); err != nil {
		return fmt.Errorf("write archive entry %q: %w", member.name, err)
	}
	return nil
}

func readMember(file *zip.File) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open archive entry: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read archive entry: %w", err)
	}
	return data, nil
}
