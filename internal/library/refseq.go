package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openmined/libsync/internal/utils"
)

// RefSeqIndex maps genus to species to the RefSeq directories holding its genomes.
// Directory names look like `Salmonella_enterica_serovar_Typhi_CT18_uid57793`,
// optionally with one leading underscore.
type RefSeqIndex map[string]map[string][]string

// GroupRefSeq indexes the top-level directories of a RefSeq tree.
func GroupRefSeq(root string) (RefSeqIndex, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &ConfigurationError{Field: "refseq directory", Value: root, Err: ErrNotFound}
	}

	idx := make(RefSeqIndex)
	for _, entry := range entries {
		name := entry.Name()
		if utils.IsHidden(name) || !isDirEntry(root, entry) {
			continue
		}

		parts := strings.Split(strings.TrimPrefix(name, "_"), "_")
		if len(parts) <= 2 {
			continue
		}

		genus, species := strings.ToLower(parts[0]), strings.ToLower(parts[1])
		if idx[genus] == nil {
			idx[genus] = make(map[string][]string)
		}
		idx[genus][species] = append(idx[genus][species], name)
	}

	return idx, nil
}

// isDirEntry reports whether entry is a directory, following a symlink to one.
func isDirEntry(root string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		return utils.DirExists(filepath.Join(root, entry.Name()))
	}
	return entry.IsDir()
}

// Species returns the species known for genus in sorted order.
func (idx RefSeqIndex) Species(genus string) []string {
	species := make([]string, 0, len(idx[genus]))
	for s := range idx[genus] {
		species = append(species, s)
	}
	sort.Strings(species)
	return species
}

// Folders returns the directories for genus, limited to one species when species is set.
func (idx RefSeqIndex) Folders(genus, species string) ([]string, error) {
	genus, species = strings.ToLower(genus), strings.ToLower(species)

	bySpecies, ok := idx[genus]
	if !ok {
		return nil, &ConfigurationError{Field: "genus", Value: genus, Err: ErrGenusNotFound}
	}

	if species != "" {
		folders, ok := bySpecies[species]
		if !ok {
			return nil, &ConfigurationError{Field: "species", Value: species, Err: ErrSpeciesNotFound}
		}
		return folders, nil
	}

	var folders []string
	for _, s := range idx.Species(genus) {
		folders = append(folders, bySpecies[s]...)
	}
	return folders, nil
}

// Paths returns `[folder, file]` paths for every matching genome file of the selection.
func (idx RefSeqIndex) Paths(root, genus, species string, filter Filter) ([]LocalPath, error) {
	folders, err := idx.Folders(genus, species)
	if err != nil {
		return nil, err
	}

	var paths []LocalPath
	for _, folder := range folders {
		names, err := SelectFlat(filepath.Join(root, folder), filter)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			paths = append(paths, LocalPath{folder, name})
		}
	}
	return paths, nil
}

// RefSeqLibraryName is `genus species`, or just `genus` when no species is given.
func RefSeqLibraryName(genus, species string) string {
	return strings.TrimSpace(strings.ToLower(genus) + " " + strings.ToLower(species))
}
