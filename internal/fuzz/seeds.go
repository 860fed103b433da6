package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"tabtidy/internal/driver"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"no header at all\n",
	"*** Settings ***\nLibrary  OperatingSystem\nDocumentation  first\n...  second\n",
	"*** Variables ***\n${NAME}  value\n@{LIST}  a  b\n",
	"*** Test Cases ***\nT\n  Log  x\n  :FOR  ${i}  IN RANGE  3\n  \\  Log  ${i}\n",
	"*** Test Cases ***  Step  Arg\nShort  Log  x\n",
	"| *** Test Cases *** |\n| T | Log | x |\n|    | Log | | y |\n",
	"*** Keywords ***\nK\n    [Arguments]    ${a}\n    FOR    ${x}    IN    a\n    Log    ${x}\n",
	"*** Comments ***\n\n\nanything  goes\n",
	"*** Unknown ***\n\tLog\t\tx\r\n",
	"*** Keywords ***\nK\n    FOR    ${x}    IN    a\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все поддерживаемые файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if !driver.HasExtension(path) {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
