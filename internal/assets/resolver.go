// Package assets - разрешение каталога со статикой мини-аппа.
//
// Сборка фронтенда может лежать в нескольких местах в зависимости от того,
// как задан Root directory на хостинге ('/' или 'web') и куда собрался
// билд ('web/' или 'web/dist'). Резолвер перебирает кандидатов строго в
// заданном порядке и фиксирует первый, в котором есть хотя бы один
// entry-файл. Без валидного каталога сервер стартовать не должен.
package assets

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Entry-файлы, по которым каталог признаётся валидной сборкой.
const (
	rootEntry     = "index.html"
	buyerEntry    = "buyer/index.html"
	merchantEntry = "merchant/index.html"
)

// Root - выбранный каталог статики.
//
// Наличие entry-файлов снимается один раз при резолве и дальше не
// перепроверяется: состав сборки неизменен на время жизни процесса.
type Root struct {
	base        string
	hasRoot     bool
	hasBuyer    bool
	hasMerchant bool
}

// Resolve возвращает первый кандидат (в порядке списка), содержащий
// валидную сборку. Порядок детерминирован и не зависит от порядка
// обхода файловой системы.
//
// Если ни один кандидат не подошёл, возвращается ошибка со всем
// списком проверенных путей - безопасного дефолта здесь нет.
func Resolve(candidates []string) (*Root, error) {
	for _, base := range candidates {
		r := probe(base)
		if r.hasRoot || r.hasBuyer || r.hasMerchant {
			return r, nil
		}
	}
	return nil, fmt.Errorf("web build directory not found, tried: %s", strings.Join(candidates, ", "))
}

// probe снимает наличие entry-файлов в каталоге.
func probe(base string) *Root {
	return &Root{
		base:        base,
		hasRoot:     isRegularFile(filepath.Join(base, rootEntry)),
		hasBuyer:    isRegularFile(filepath.Join(base, filepath.FromSlash(buyerEntry))),
		hasMerchant: isRegularFile(filepath.Join(base, filepath.FromSlash(merchantEntry))),
	}
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Base возвращает путь выбранного каталога.
func (r *Root) Base() string {
	return r.base
}

// FilePath отображает URL-путь под префиксом в файл внутри каталога.
//
// Возвращает ok=false, если файла нет или путь выходит за пределы
// каталога (попытка traversal). Существующий файл отдаётся как есть,
// фоллбек на entry-файл здесь не применяется.
func (r *Root) FilePath(urlPath, prefix string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, prefix)
	if rel == urlPath && urlPath != prefix {
		return "", false
	}

	// Clean от корня гарантирует, что '..' не выведет выше base
	cleaned := path.Clean("/" + rel)
	full := filepath.Join(r.base, filepath.FromSlash(cleaned))
	if !isRegularFile(full) {
		return "", false
	}
	return full, true
}

// Entry выбирает entry-файл для SPA-фоллбека по политике приоритетов:
//
//  1. путь начинается с merchant-подприложения и merchant entry есть;
//  2. путь равен префиксу или начинается с buyer-подприложения и buyer
//     entry есть;
//  3. корневой index.html, если есть;
//  4. buyer entry, затем merchant entry.
//
// После успешного Resolve хотя бы один entry существует, поэтому выбор
// всегда определён.
func (r *Root) Entry(urlPath, prefix string) string {
	wantMerchant := strings.HasPrefix(urlPath, prefix+"/merchant")
	wantBuyer := urlPath == prefix || strings.HasPrefix(urlPath, prefix+"/buyer")

	switch {
	case wantMerchant && r.hasMerchant:
		return filepath.Join(r.base, filepath.FromSlash(merchantEntry))
	case wantBuyer && r.hasBuyer:
		return filepath.Join(r.base, filepath.FromSlash(buyerEntry))
	case r.hasRoot:
		return filepath.Join(r.base, rootEntry)
	case r.hasBuyer:
		return filepath.Join(r.base, filepath.FromSlash(buyerEntry))
	default:
		return filepath.Join(r.base, filepath.FromSlash(merchantEntry))
	}
}
