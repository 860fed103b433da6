// Package fuzztests houses Go fuzz harnesses for the lexer and the tidy
// pipeline. Their goal is to smoke test robustness on arbitrary inputs:
// no panics, lossless lexing and re-lexable tidy output.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и
// все проходы форматирования.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/tidy, internal/diag,
// internal/ast, internal/testkit.
package fuzztests
