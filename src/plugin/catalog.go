package plugin

import "github.com/sofmeright/flatconf/src/lint"

// Bundled returns the rule catalogs shipped with flatconf.
func Bundled() []*lint.Plugin {
	return []*lint.Plugin{
		{
			ID:      "eslint-plugin-security",
			Version: "1.7.1",
			Rules: []string{
				"detect-bidi-characters",
				"detect-buffer-noassert",
				"detect-child-process",
				"detect-disable-mustache-escape",
				"detect-eval-with-expression",
				"detect-new-buffer",
				"detect-no-csrf-before-method-override",
				"detect-non-literal-fs-filename",
				"detect-non-literal-regexp",
				"detect-non-literal-require",
				"detect-object-injection",
				"detect-possible-timing-attacks",
				"detect-pseudoRandomBytes",
				"detect-unsafe-regex",
			},
		},
		{
			ID:      "eslint-plugin-node",
			Version: "11.1.0",
			Rules: []string{
				"callback-return",
				"exports-style",
				"file-extension-in-import",
				"global-require",
				"handle-callback-err",
				"no-callback-literal",
				"no-deprecated-api",
				"no-exports-assign",
				"no-extraneous-import",
				"no-extraneous-require",
				"no-missing-import",
				"no-missing-require",
				"no-mixed-requires",
				"no-new-require",
				"no-path-concat",
				"no-process-env",
				"no-process-exit",
				"no-restricted-import",
				"no-restricted-require",
				"no-sync",
				"no-unpublished-bin",
				"no-unpublished-import",
				"no-unpublished-require",
				"no-unsupported-features/es-builtins",
				"no-unsupported-features/es-syntax",
				"no-unsupported-features/node-builtins",
				"prefer-global/buffer",
				"prefer-global/console",
				"prefer-global/process",
				"prefer-global/text-decoder",
				"prefer-global/text-encoder",
				"prefer-global/url",
				"prefer-global/url-search-params",
				"prefer-promises/dns",
				"prefer-promises/fs",
				"process-exit-as-throw",
				"shebang",
			},
		},
		{
			ID:      "eslint-plugin-promise",
			Version: "6.1.1",
			Rules: []string{
				"always-return",
				"avoid-new",
				"catch-or-return",
				"no-callback-in-promise",
				"no-multiple-resolved",
				"no-native",
				"no-nesting",
				"no-new-statics",
				"no-promise-in-callback",
				"no-return-in-finally",
				"no-return-wrap",
				"param-names",
				"prefer-await-to-callbacks",
				"prefer-await-to-then",
				"valid-params",
			},
		},
	}
}

// CoreRules returns the ids of rules built into the engine.
func CoreRules() []string {
	return []string{
		// Possible problems
		"array-callback-return",
		"constructor-super",
		"for-direction",
		"getter-return",
		"no-async-promise-executor",
		"no-await-in-loop",
		"no-class-assign",
		"no-compare-neg-zero",
		"no-cond-assign",
		"no-const-assign",
		"no-constant-binary-expression",
		"no-constant-condition",
		"no-constructor-return",
		"no-control-regex",
		"no-debugger",
		"no-dupe-args",
		"no-dupe-class-members",
		"no-dupe-else-if",
		"no-dupe-keys",
		"no-duplicate-case",
		"no-duplicate-imports",
		"no-empty-character-class",
		"no-empty-pattern",
		"no-ex-assign",
		"no-fallthrough",
		"no-func-assign",
		"no-import-assign",
		"no-inner-declarations",
		"no-invalid-regexp",
		"no-irregular-whitespace",
		"no-loss-of-precision",
		"no-misleading-character-class",
		"no-new-native-nonconstructor",
		"no-obj-calls",
		"no-promise-executor-return",
		"no-prototype-builtins",
		"no-self-assign",
		"no-self-compare",
		"no-setter-return",
		"no-sparse-arrays",
		"no-template-curly-in-string",
		"no-this-before-super",
		"no-undef",
		"no-unexpected-multiline",
		"no-unmodified-loop-condition",
		"no-unreachable",
		"no-unreachable-loop",
		"no-unsafe-finally",
		"no-unsafe-negation",
		"no-unsafe-optional-chaining",
		"no-unused-private-class-members",
		"no-unused-vars",
		"no-use-before-define",
		"no-useless-backreference",
		"require-atomic-updates",
		"use-isnan",
		"valid-typeof",

		// Suggestions
		"accessor-pairs",
		"arrow-body-style",
		"block-scoped-var",
		"camelcase",
		"capitalized-comments",
		"class-methods-use-this",
		"complexity",
		"consistent-return",
		"consistent-this",
		"curly",
		"default-case",
		"default-case-last",
		"default-param-last",
		"dot-notation",
		"eqeqeq",
		"func-name-matching",
		"func-names",
		"func-style",
		"grouped-accessor-pairs",
		"guard-for-in",
		"id-denylist",
		"id-length",
		"id-match",
		"init-declarations",
		"logical-assignment-operators",
		"max-classes-per-file",
		"max-depth",
		"max-lines",
		"max-lines-per-function",
		"max-nested-callbacks",
		"max-params",
		"max-statements",
		"new-cap",
		"no-alert",
		"no-array-constructor",
		"no-bitwise",
		"no-caller",
		"no-case-declarations",
		"no-console",
		"no-continue",
		"no-delete-var",
		"no-div-regex",
		"no-else-return",
		"no-empty",
		"no-empty-function",
		"no-empty-static-block",
		"no-eq-null",
		"no-eval",
		"no-extend-native",
		"no-extra-bind",
		"no-extra-boolean-cast",
		"no-extra-label",
		"no-global-assign",
		"no-implicit-coercion",
		"no-implicit-globals",
		"no-implied-eval",
		"no-inline-comments",
		"no-invalid-this",
		"no-iterator",
		"no-label-var",
		"no-labels",
		"no-lone-blocks",
		"no-lonely-if",
		"no-loop-func",
		"no-magic-numbers",
		"no-multi-assign",
		"no-multi-str",
		"no-negated-condition",
		"no-nested-ternary",
		"no-new",
		"no-new-func",
		"no-new-wrappers",
		"no-nonoctal-decimal-escape",
		"no-object-constructor",
		"no-octal",
		"no-octal-escape",
		"no-param-reassign",
		"no-plusplus",
		"no-proto",
		"no-redeclare",
		"no-regex-spaces",
		"no-restricted-exports",
		"no-restricted-globals",
		"no-restricted-imports",
		"no-restricted-properties",
		"no-restricted-syntax",
		"no-return-assign",
		"no-script-url",
		"no-sequences",
		"no-shadow",
		"no-shadow-restricted-names",
		"no-ternary",
		"no-throw-literal",
		"no-undef-init",
		"no-undefined",
		"no-underscore-dangle",
		"no-unneeded-ternary",
		"no-unused-expressions",
		"no-unused-labels",
		"no-useless-call",
		"no-useless-catch",
		"no-useless-computed-key",
		"no-useless-concat",
		"no-useless-constructor",
		"no-useless-escape",
		"no-useless-rename",
		"no-useless-return",
		"no-var",
		"no-void",
		"no-warning-comments",
		"no-with",
		"object-shorthand",
		"one-var",
		"operator-assignment",
		"prefer-arrow-callback",
		"prefer-const",
		"prefer-destructuring",
		"prefer-exponentiation-operator",
		"prefer-named-capture-group",
		"prefer-numeric-literals",
		"prefer-object-has-own",
		"prefer-object-spread",
		"prefer-promise-reject-errors",
		"prefer-regex-literals",
		"prefer-rest-params",
		"prefer-spread",
		"prefer-template",
		"radix",
		"require-await",
		"require-unicode-regexp",
		"require-yield",
		"sort-imports",
		"sort-keys",
		"sort-vars",
		"strict",
		"symbol-description",
		"vars-on-top",
		"yoda",

		// Layout & formatting
		"comma-dangle",
		"indent",
		"quotes",
		"semi",
		"unicode-bom",
	}
}
