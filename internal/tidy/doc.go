// Package tidy contains the formatting passes that turn a lexed tree into
// canonical, column-aligned text.
//
// Назначение: нормализация разделителей, заголовков, имён настроек и пустых строк.
// Не делает: разбора исходника, IO, валидации настроек.
// Зависимости: internal/ast, internal/token, internal/normalize.
//
// Passes only change token text and drop or add whole statements; they never
// fail. Serialise the result with ast.File.Bytes.
package tidy
