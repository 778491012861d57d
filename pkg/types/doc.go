// Package types holds the declarative model of package operations.
//
// An operation list is a sequence of entries. Each entry maps action tags
// (install, try_install, remove, try_remove, localInstall, source) to lists of
// package items. A package item is either a bare name or a mapping carrying
// pre- and post-install hook scripts:
//
//	operations:
//	  - install:
//	      - vim
//	      - package: firefox-i18n-${LOCALE}
//	        pre-script: /usr/bin/true
//	        post-script: ""
//	  - try_remove: [nano]
//
// Entries decoded from YAML keep the tag order of the document. Entries built
// from generic maps (koanf) are ordered by tag name.
package types
